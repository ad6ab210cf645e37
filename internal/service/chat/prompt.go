package chat

import (
	"fmt"
	"strings"

	"github.com/lovefest/lovefest_backend/internal/event"
)

const (
	NotConfiguredReply = "Sorry, the AI assistant is not configured yet. Please contact the wedding organizers for assistance."
	FallbackReply      = "Sorry, I'm having trouble responding right now. Please try again later. 💕"
)

func coupleOr(d event.Details, fallback string) string {
	if d.Couple == "" {
		return fallback
	}
	return d.Couple
}

func greeting(bot string, d event.Details) string {
	return fmt.Sprintf("Hello! 💕 I'm %s, your AI assistant for %s's celebration. How can I help you with the event details?",
		bot, coupleOr(d, "the couple"))
}

func apology(d event.Details) string {
	return fmt.Sprintf("Sorry, I'm having trouble connecting right now. Please try again later or contact %s directly!",
		coupleOr(d, "the organizers"))
}

// SystemPrompt is prepended to every user message.
func SystemPrompt(bot string, d event.Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an AI assistant for %s's celebration website.\n\n", bot, coupleOr(d, "the couple"))
	b.WriteString("Event Details:\n")
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}
	line("Event", d.Title)
	line("Couple", d.Couple)
	if d.Scheduled() {
		line("Date", d.Start.Format("January 2, 2006"))
		line("Time", d.Start.Format("3:04 PM")+" onwards")
	}
	line("Venue", d.Venue)
	line("Map", d.MapURL)
	line("Dress Code", d.DressCode)
	line("About", d.Description)
	b.WriteString(`
Requirements:
- Be friendly, romantic, and celebratory in tone
- Focus on event details, RSVPs, and well-wishes
- Help with questions about the ceremony, venue, timeline, and celebration
- Encourage RSVPs and sharing of well-wishes
- Only return the response text without any explanations or formatting
`)
	return b.String()
}

func composePrompt(system, text string) string {
	return system + "\nUser query: " + text
}
