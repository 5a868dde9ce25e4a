package supplychain

import (
	"context"
	"fmt"
	"strings"

	"github.com/procurea/scdra/providers/tool"
)

// The execution tools below are world-changing and sit behind the run's
// approval gate. Even when approved they only simulate: payloads say exactly
// what would have happened, and the mock note makes that unmistakable in the
// transcript.

type sendNotificationInput struct {
	Channel    string `json:"channel" jsonschema:"description=Delivery channel for the notification,enum=slack,enum=email,enum=both,required"`
	Recipients string `json:"recipients" jsonschema:"description=Comma separated recipients such as a Slack channel or email addresses,minLength=1,required"`
	Message    string `json:"message" jsonschema:"description=Notification body to deliver,minLength=1,required"`
}

type sendNotificationOutput struct {
	Status         string   `json:"status"`
	Channel        string   `json:"channel"`
	Recipients     []string `json:"recipients"`
	MessagePreview string   `json:"message_preview"`
	SentAt         string   `json:"sent_at"`
	Note           string   `json:"note"`
}

const messagePreviewLimit = 200

// SendNotification simulates delivering a stakeholder notification.
func (ts *Toolset) SendNotification() tool.GenericTool {
	return tool.New("send_notification",
		func(_ context.Context, in sendNotificationInput) (sendNotificationOutput, error) {
			recipients := make([]string, 0)
			for _, r := range strings.Split(in.Recipients, ",") {
				if r = strings.TrimSpace(r); r != "" {
					recipients = append(recipients, r)
				}
			}

			return sendNotificationOutput{
				Status:         "sent",
				Channel:        in.Channel,
				Recipients:     recipients,
				MessagePreview: truncate(in.Message, messagePreviewLimit),
				SentAt:         ts.now().Format("2006-01-02T15:04:05Z07:00"),
				Note:           "[MOCK] Notification simulated. No actual message was sent.",
			}, nil
		},
		tool.WithDescription("Send a notification to stakeholders via Slack or email. Requires explicit human approval of the response plan first."),
		tool.WithSideEffect(tool.SideEffectWorldChanging),
	)
}

type updatePOInput struct {
	POID        string `json:"po_id" jsonschema:"description=Purchase order identifier such as PO-2024-001,minLength=1,required"`
	NewSupplier string `json:"new_supplier" jsonschema:"description=Supplier ID the order should be moved to such as ALT-003,minLength=1,required"`
	NewTerms    string `json:"new_terms,omitempty" jsonschema:"description=Optional JSON describing revised terms such as price or delivery date."`
}

type updatePOOutput struct {
	Status           string `json:"status"`
	POID             string `json:"po_id"`
	PreviousSupplier string `json:"previous_supplier"`
	NewSupplier      string `json:"new_supplier"`
	NewTerms         string `json:"new_terms,omitempty"`
	UpdatedAt        string `json:"updated_at"`
	Note             string `json:"note"`
}

// UpdatePurchaseOrder simulates rerouting a purchase order to a different
// supplier. The order must exist; an unknown PO ID is an input error the
// model can correct.
func (ts *Toolset) UpdatePurchaseOrder() tool.GenericTool {
	return tool.New("update_purchase_order",
		func(_ context.Context, in updatePOInput) (updatePOOutput, error) {
			poID := strings.ToUpper(strings.TrimSpace(in.POID))

			var current *PurchaseOrder
			for i := range ts.data.PurchaseOrders {
				if ts.data.PurchaseOrders[i].POID == poID {
					current = &ts.data.PurchaseOrders[i]
					break
				}
			}
			if current == nil {
				return updatePOOutput{}, fmt.Errorf("purchase order %s not found", poID)
			}

			return updatePOOutput{
				Status:           "updated",
				POID:             poID,
				PreviousSupplier: current.SupplierID,
				NewSupplier:      strings.ToUpper(strings.TrimSpace(in.NewSupplier)),
				NewTerms:         in.NewTerms,
				UpdatedAt:        ts.now().Format("2006-01-02T15:04:05Z07:00"),
				Note:             "[MOCK] Purchase order update simulated. No actual ERP change was made.",
			}, nil
		},
		tool.WithDescription("Reroute an existing purchase order to a different supplier with optional revised terms. Requires explicit human approval of the response plan first."),
		tool.WithSideEffect(tool.SideEffectWorldChanging),
	)
}
