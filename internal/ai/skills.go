package ai

import (
	"fmt"
	"strings"
)

const headlineSystemPrompt = `You are a news editor who writes engaging, clickable headlines about AI news while keeping them factually accurate. Never add information that is not in the original headline or description. Return only the new headline on a single line, nothing else.`

const headlineUserPromptTmpl = `Transform this AI news headline into a %s version while maintaining factual accuracy.

Original: %q
Description: %q
Interest Level: %d/10 (%s)

Requirements:
1. Make it more engaging and clickable
2. Keep it factually accurate - don't add false information
3. Use power words and emotional triggers appropriate for the interest level
4. Keep it under 100 characters if possible
5. Start the headline with the excitement badge: %s`

const answerSystemPrompt = `You are an AI news assistant. You answer questions about today's AI news articles in a helpful, conversational, friendly tone. Reference specific articles when relevant, add useful context, and suggest a follow-up question. If the articles cannot answer the question, say so. Keep it to 2-3 short paragraphs.`

const overviewSystemPrompt = `You are an AI news assistant. Give a conversational summary of today's AI news articles, which are listed from most to least interesting. Highlight the top 3 developments, explain why they matter, connect related stories, and end with an invitation for questions. Keep it to 2-3 short paragraphs.`

var summarySystemPrompts = map[SummaryKind]string{
	SummaryBrief: `Create a brief, audio-friendly news summary (30-60 seconds of speech). Focus on the top 2-3 most important stories and why they matter, in natural conversational language that is easy to understand when spoken aloud. Start with "Here's your AI news update for today..."`,

	SummaryDetailed: `Create a detailed, audio-friendly news summary (2-3 minutes of speech). Cover all major stories with context, connections between related stories, and implications, using natural conversational language with clear transitions. Start with "Welcome to your comprehensive AI news briefing..."`,

	SummaryHighlights: `Create a highlights-focused audio summary. Focus on the most exciting or surprising developments, major company announcements, breakthrough research, and industry implications, in an engaging, enthusiastic tone. Start with "Here are today's most exciting AI developments..."`,
}

// HeadlinePrompt builds the system and user prompts for a headline rewrite.
func HeadlinePrompt(req HeadlineRequest) (systemPrompt string, userPrompt string) {
	systemPrompt = headlineSystemPrompt
	userPrompt = fmt.Sprintf(headlineUserPromptTmpl,
		req.Style, req.Title, req.Description, req.InterestScore, req.Badge, req.Badge)
	return systemPrompt, userPrompt
}

// AnswerPrompt builds the system and user prompts for a conversational
// answer. An empty question asks for an overview of the articles instead.
func AnswerPrompt(question string, articles []ArticleEntry) (systemPrompt string, userPrompt string) {
	var b strings.Builder
	b.WriteString("Today's AI news articles:\n")
	writeArticleList(&b, articles)

	question = strings.TrimSpace(question)
	if question == "" {
		return overviewSystemPrompt, b.String()
	}

	fmt.Fprintf(&b, "\nThe user asked: %q\n", question)
	return answerSystemPrompt, b.String()
}

// AudioSummaryPrompt builds the system and user prompts for an
// audio-friendly summary. Unknown kinds fall back to the brief summary.
func AudioSummaryPrompt(kind SummaryKind, articles []ArticleEntry) (systemPrompt string, userPrompt string) {
	systemPrompt, ok := summarySystemPrompts[kind]
	if !ok {
		systemPrompt = summarySystemPrompts[SummaryBrief]
	}

	var b strings.Builder
	b.WriteString("AI news articles:\n")
	writeArticleList(&b, articles)
	return systemPrompt, b.String()
}

func writeArticleList(b *strings.Builder, articles []ArticleEntry) {
	if len(articles) == 0 {
		b.WriteString("(no articles available)\n")
		return
	}
	for i, a := range articles {
		source := a.Source
		if source == "" {
			source = "Unknown"
		}
		fmt.Fprintf(b, "%d. %s %s\n   Source: %s\n   Description: %s\n   Interest Score: %d/10\n   URL: %s\n",
			i+1, a.Badge, a.Title, source, a.Description, a.InterestScore, a.URL)
	}
}

// cleanHeadline reduces a model response to a single headline line,
// dropping a "Headline:" label and surrounding quotes.
func cleanHeadline(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	for _, prefix := range []string{"Headline:", "New headline:", "headline:"} {
		if after, found := strings.CutPrefix(s, prefix); found {
			s = strings.TrimSpace(after)
			break
		}
	}
	s = strings.Trim(s, "\"“”'`*")
	return strings.TrimSpace(s)
}

func trimResponse(s string) string {
	return strings.TrimSpace(s)
}
