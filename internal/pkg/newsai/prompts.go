package newsai

import (
	"fmt"
	"strings"

	"github.com/ManuelReschke/Newsroom/app/models"
)

const publication = "Kenya Leo Media"

const editorSystemPrompt = `You are a professional news editor for ` + publication + `. Your task is to turn social media posts (tweets) into verified, professional news articles.

Guidelines:
- Write in a neutral, professional journalistic tone
- Extract key facts and avoid speculation
- Write compelling but accurate headlines
- Write concise summaries (2-3 sentences, 150-200 characters)
- Write detailed content (3-4 paragraphs, professional journalism style)
- Categorize accurately: breaking, politics, entertainment, sports, technology, business, lifestyle, or trending
- Always cite the source
- Avoid sensationalism and misinformation
- Use the inverted pyramid style (most important information first)
- Stay objective and fact-based`

func editorUserPrompt(tweet string) string {
	return "Analyze this tweet and convert it into a professional news article:\n\n" +
		tweet +
		"\n\nProvide the response using the " + extractFunctionName + " function."
}

// chatSystemPrompt grounds the assistant in the given articles only.
func chatSystemPrompt(articles []models.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a helpful news assistant for %s, a Kenyan news platform. Your role is to:
1. Answer questions about published news articles
2. Provide summaries of news by category (Politics, Sports, Lifestyle, Business, Technology, Entertainment)
3. Help readers discover relevant content
4. Provide accurate information based only on the articles provided

Available articles:
`, publication)
	b.WriteString(articlesContext(articles))
	b.WriteString(`

Guidelines:
- Only reference information from the provided articles
- Be concise and informative
- When asked about a specific category, focus on those articles
- Suggest related articles when relevant
- If asked about something not in the articles, politely say you don't have that information
- Use a friendly, professional tone`)
	return b.String()
}

func articlesContext(articles []models.Article) string {
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nCategory: %s\nExcerpt: %s\nContent: %s...\n",
			a.Title, a.Category, a.Excerpt, firstRunes(a.Content, contentSnippetLength)))
	}
	return strings.Join(blocks, "\n---\n")
}

// firstRunes cuts s to at most n characters without splitting a UTF-8 sequence.
func firstRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
