package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trendsmith/internal/models"
)

// maxPostChars is X's limit for a single post.
const maxPostChars = 280

func buildAnalyzePrompt(topic string, samples []models.StyleSample, hoursBack int) string {
	var sb strings.Builder

	sb.WriteString("You are analyzing viral social media posts to extract a posting style profile.\n\n")
	fmt.Fprintf(&sb, "Below are the top %d most-engaged posts about %q from the last %d hours.\n\n", len(samples), topic, hoursBack)

	for i, s := range samples {
		fmt.Fprintf(&sb, "%d. [%d likes, %d reposts]\n%s\n\n", i+1, s.Likes, s.Reposts, s.Content)
	}

	sb.WriteString("Analyze these posts and extract a style profile. Return a JSON object with:\n")
	sb.WriteString("- tone: a 3-5 word description of the voice\n")
	sb.WriteString("- format: the structural pattern most of the top posts follow\n")
	sb.WriteString("- min_words: minimum word count for posts in this style\n")
	sb.WriteString("- max_words: maximum word count for posts in this style\n")
	sb.WriteString("- hooks: array of 3-5 opening patterns that appear in top posts\n")
	sb.WriteString("- avoid: array of 3-5 anti-patterns to avoid\n")
	sb.WriteString("- examples: array of 3 NEW example posts written in this style (not copies of the input)\n\n")
	sb.WriteString("IMPORTANT: Respond with ONLY a valid JSON object. No markdown, no code blocks, no explanation.\n")

	return sb.String()
}

func buildComposePrompt(topic string, style models.StyleProfile, recent []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a social media writer. Write a post about %q using EXACTLY this style:\n\n", topic)
	sb.WriteString("STYLE CARD:\n")
	fmt.Fprintf(&sb, "- Tone: %s\n", style.Tone)
	fmt.Fprintf(&sb, "- Format: %s\n", style.Format)
	fmt.Fprintf(&sb, "- Length: %d-%d words\n", style.MinWords, style.MaxWords)
	fmt.Fprintf(&sb, "- Good hooks: %s\n", strings.Join(style.Hooks, ", "))
	fmt.Fprintf(&sb, "- Avoid: %s\n\n", strings.Join(style.Avoid, ", "))

	sb.WriteString("REFERENCE STYLE (write like these, don't copy them):\n")
	sb.WriteString(strings.Join(style.Examples, "\n\n"))
	sb.WriteString("\n\n")

	sb.WriteString("FRESH CONTEXT (use this to make the post timely and specific):\n")
	sb.WriteString(strings.Join(recent, "\n\n"))
	sb.WriteString("\n\n")

	sb.WriteString("Rules:\n")
	fmt.Fprintf(&sb, "- MUST be under %d characters\n", maxPostChars)
	sb.WriteString("- MUST match the tone and format exactly\n")
	sb.WriteString("- MUST use a hook from the list or a similar one\n")
	sb.WriteString("- MUST incorporate something from the fresh context\n")
	sb.WriteString("- Do NOT use hashtags or emojis unless the style card says to\n\n")
	sb.WriteString("Return ONLY the post text, nothing else.\n")

	return sb.String()
}

// ParseStyleProfile extracts the style profile object from a model response.
// Markdown code fences and text around the outermost JSON object are ignored.
func ParseStyleProfile(raw string) (models.StyleProfile, error) {
	body := stripCodeFence(raw)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return models.StyleProfile{}, fmt.Errorf("no JSON object in style analysis response (response was: %.200s)", raw)
	}

	var profile models.StyleProfile
	if err := json.Unmarshal([]byte(body[start:end+1]), &profile); err != nil {
		return models.StyleProfile{}, fmt.Errorf("failed to parse style analysis JSON: %w (response was: %.200s)", err, raw)
	}
	if strings.TrimSpace(profile.Tone) == "" || strings.TrimSpace(profile.Format) == "" {
		return models.StyleProfile{}, errors.New("style analysis response is missing tone or format")
	}
	if profile.MinWords < 0 || profile.MaxWords < profile.MinWords {
		return models.StyleProfile{}, fmt.Errorf("style analysis returned invalid word range %d-%d", profile.MinWords, profile.MaxWords)
	}
	if profile.Hooks == nil {
		profile.Hooks = []string{}
	}
	if profile.Avoid == nil {
		profile.Avoid = []string{}
	}
	if profile.Examples == nil {
		profile.Examples = []string{}
	}
	return profile, nil
}

// CleanPost trims a composed post and removes quoting the model sometimes adds.
func CleanPost(raw string) (string, error) {
	text := strings.TrimSpace(stripCodeFence(raw))
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if text == "" {
		return "", errors.New("claude returned an empty post")
	}
	return text, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
