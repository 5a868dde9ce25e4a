package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/procurea/scdra/agent"
	"github.com/procurea/scdra/providers/ai"
)

var (
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)

	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	toolCallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	toolOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	toolErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	answerStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)
)

func renderReport(report string) string {
	return reportStyle.Render("DISRUPTION REPORT\n" + report)
}

func renderNotice(text string) string {
	return noticeStyle.Render(text)
}

// renderTranscript formats the run for the terminal: each model turn, each
// tool call with its outcome, the final answer and the run statistics.
func renderTranscript(result *agent.RunResult) string {
	var b strings.Builder

	for _, msg := range result.Conversation.All() {
		switch msg.Role {
		case ai.RoleAssistant:
			if msg.Content != "" {
				b.WriteString(assistantStyle.Render("agent") + " " + msg.Content + "\n")
			}
			for _, call := range msg.ToolCalls {
				b.WriteString(toolCallStyle.Render(fmt.Sprintf("  -> %s(%s)", call.Function.Name, compactArgs(call.Function.Arguments))) + "\n")
			}

		case ai.RoleTool:
			var tr ai.ToolResult
			if err := json.Unmarshal([]byte(msg.Content), &tr); err == nil && !tr.Success {
				b.WriteString(toolErrStyle.Render(fmt.Sprintf("  <- %s failed: %s: %s", msg.Name, tr.Error, tr.Message)) + "\n")
			} else {
				b.WriteString(toolOKStyle.Render(fmt.Sprintf("  <- %s ok", msg.Name)) + "\n")
			}
		}
	}

	if result.FinalAnswer != "" {
		b.WriteString("\n" + answerStyle.Render("FINAL ANSWER\n"+result.FinalAnswer) + "\n")
	}

	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"\n%d model calls, %d tool calls, %d tokens",
		result.Stats.Iterations, result.Stats.ToolCalls, result.Stats.Usage.TotalTokens,
	)))

	return b.String()
}

// compactArgs squeezes a JSON arguments string onto one short line.
func compactArgs(arguments string) string {
	compact := strings.Join(strings.Fields(arguments), " ")
	if len(compact) > 80 {
		compact = compact[:80] + "..."
	}
	return compact
}
