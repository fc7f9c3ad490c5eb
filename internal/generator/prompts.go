package generator

import (
	"fmt"
	"strings"

	"github.com/tuannvm/ai-toolbox/internal/llm"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

// MaxTranscriptChars bounds the transcript text placed in a prompt
const MaxTranscriptChars = 4000

const (
	defaultPlatform = "linkedin"
	defaultStyle    = "professional"
	defaultTitle    = "YouTube Video"
)

var platformGuides = map[string]string{
	"linkedin":  "professional post for LinkedIn that includes bullet points, some emojis, and relevant hashtags",
	"twitter":   "concise tweet for X (Twitter) within 280 characters, with relevant hashtags",
	"youtube":   "engaging community post for YouTube that encourages interaction",
	"instagram": "visually descriptive caption for Instagram with appropriate emojis and hashtags",
}

var styleGuides = map[string]string{
	"professional":      "in a formal, business-oriented tone",
	"casual":            "in a friendly, conversational approach",
	"inspirational":     "in a motivational and uplifting style",
	"educational":       "in an informative and teaching-focused manner",
	"humorous":          "with light-hearted appropriate humor",
	"thought-provoking": "that encourages discussion and reflection",
}

// outputTemplates take the video title as their only argument
var outputTemplates = map[string]string{
	"summary":     "Summarize the main points of this YouTube video titled '%s'.",
	"notes":       "Create detailed notes in bullet point format from this YouTube video titled '%s'.",
	"explanation": "Explain the content of this YouTube video titled '%s' in simple terms that are easy to understand.",
	"questions":   "Generate important questions and answers based on the content of this YouTube video titled '%s'.",
}

// SocialPostPrompt builds the prompt for a social media post.
// Unknown platforms and styles fall back to LinkedIn and professional.
func SocialPostPrompt(req models.SocialPostRequest) llm.Prompt {
	platform, ok := platformGuides[strings.ToLower(req.Platform)]
	if !ok {
		platform = platformGuides[defaultPlatform]
	}
	style, ok := styleGuides[strings.ToLower(req.WritingStyle)]
	if !ok {
		style = styleGuides[defaultStyle]
	}

	user := fmt.Sprintf("Create a %s %s about the topic: %s.", platform, style, req.Topic)
	user = withInstructions(user, req.CustomInstructions)

	return llm.Prompt{
		System:      "You are an expert at creating engaging social media content.",
		User:        user,
		MaxTokens:   800,
		Temperature: 0.8,
	}
}

// TranscriptPrompt builds the prompt for analysing a transcript.
// The transcript is truncated to MaxTranscriptChars characters.
func TranscriptPrompt(transcript, outputType, customPrompt, title string) llm.Prompt {
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}
	transcript = truncateRunes(transcript, MaxTranscriptChars)

	var user string
	if tmpl, ok := outputTemplates[outputType]; ok {
		user = fmt.Sprintf(tmpl+" Transcript:\n\n%s", title, transcript)
	} else if outputType == "custom" && strings.TrimSpace(customPrompt) != "" {
		user = fmt.Sprintf("%s\n\nVideo Title: '%s'\nTranscript:\n\n%s", customPrompt, title, transcript)
	} else {
		user = fmt.Sprintf("Analyze the content of this YouTube video titled '%s'. Transcript:\n\n%s", title, transcript)
	}

	return llm.Prompt{
		System: "You are an expert at analyzing and summarizing content.",
		User:   user,
	}
}

// CommunicationPrompt builds the prompt for a team communication
func CommunicationPrompt(req models.CommunicationRequest) llm.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s for a team with the subject: %s.\n", strings.ToLower(req.ContentType), req.Subject)
	fmt.Fprintf(&b, "Use a %s tone and a %s style.", strings.ToLower(req.Tone), strings.ToLower(req.Style))
	if strings.TrimSpace(req.Details) != "" {
		fmt.Fprintf(&b, "\n\nKey details to cover:\n%s", req.Details)
	}
	user := withInstructions(b.String(), req.AdditionalInfo)

	return llm.Prompt{
		System: "You are an experienced team lead who writes clear, well structured workplace communication.",
		User:   user,
	}
}

// JiraTicketPrompt builds the prompt turning rough notes into a ticket body
func JiraTicketPrompt(req models.JiraGenerateRequest) llm.Prompt {
	priority := req.Priority
	if strings.TrimSpace(priority) == "" {
		priority = "Medium"
	}
	user := fmt.Sprintf(`Write a Jira %s ticket with %s priority.

Subject: %s

Rough description:
%s

Structure the ticket with these sections: Summary, Description, Steps or Tasks, Acceptance Criteria.
Use Jira wiki markup for headings and lists.`, req.TicketType, priority, req.Subject, req.RoughDescription)

	return llm.Prompt{
		System:      "You are a senior engineer who writes precise, actionable Jira tickets.",
		User:        user,
		Temperature: 0.4,
	}
}

// CommentPrompt builds the prompt for a comment on someone else's post
func CommentPrompt(req models.CommentRequest) llm.Prompt {
	user := fmt.Sprintf("Generate a thoughtful %s comment for the following %s content:\n\n%s", req.Tone, req.Platform, req.Content)
	user = withInstructions(user, req.CustomInstructions)

	return llm.Prompt{
		System:      "You are an expert at creating engaging and authentic comments.",
		User:        user,
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

func withInstructions(prompt, instructions string) string {
	if strings.TrimSpace(instructions) == "" {
		return prompt
	}
	return prompt + "\n\nAdditional instructions: " + instructions
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
