package core

import "strings"

// CannedEntry is a precomputed question/answer pair used when no live Gemini
// response is available.
type CannedEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CannedEntries holds the reference Q&A content, in the order the matching
// rules refer to them. The questions double as the suggestion chips shown
// when a conversation is first opened.
var CannedEntries = []CannedEntry{
	{
		Question: "How do I sell my license?",
		Answer: "Selling your license is easy! Just follow these 3 steps: 1) Upload your license details through our secure portal, " +
			"2) Receive an AI-powered valuation within minutes, 3) Accept the offer and get paid within 48 hours. " +
			"Would you like more details about any of these steps?",
	},
	{
		Question: "What types of licenses can I sell?",
		Answer: "SoftShell supports a wide range of software licenses from major vendors including Microsoft, Adobe, Oracle, Autodesk, and many more. " +
			"Both perpetual and subscription licenses can be sold on our platform, as long as they are transferable under the vendor's terms.",
	},
	{
		Question: "How much can I get for my license?",
		Answer: "The value of your license depends on several factors including the software vendor, version, remaining subscription period, and current market demand. " +
			"Our AI valuation system analyzes real-time market data to offer the best possible price. " +
			"Typically, users can recover 40-70% of the original purchase price for unused licenses.",
	},
	{
		Question: "Is selling software licenses legal?",
		Answer: "Yes, selling transferable software licenses is legal in most jurisdictions. SoftShell ensures compliance with all relevant regulations and vendor terms. " +
			"We handle the verification process to confirm that licenses can be legally transferred before completing any transaction.",
	},
	{
		Question: "How long does payment take?",
		Answer: "Once you accept an offer, payment is typically processed within 48 hours. " +
			"SoftShell offers multiple payment options including bank transfer, PayPal, and cryptocurrency for your convenience.",
	},
}

const defaultFallbackAnswer = "I'm not sure how to answer that specific question. Could you try rephrasing, or would you like to ask about " +
	"how to sell licenses, supported license types, valuation, legality, or payment processes?"

// MatchCanned maps a free-text query to a canned entry, or nil when nothing
// matches. Rules are tested in fixed order and the first match wins, so a
// query like "how much to sell my license" resolves to the selling entry,
// not the valuation one.
func MatchCanned(query string) *CannedEntry {
	q := strings.ToLower(strings.TrimSpace(query))

	switch {
	case strings.Contains(q, "sell") && strings.Contains(q, "license"):
		return &CannedEntries[0]
	case strings.Contains(q, "types") || (strings.Contains(q, "what") && strings.Contains(q, "licenses")):
		return &CannedEntries[1]
	case strings.Contains(q, "how much") || strings.Contains(q, "value") || strings.Contains(q, "price"):
		return &CannedEntries[2]
	case strings.Contains(q, "legal") || strings.Contains(q, "allowed"):
		return &CannedEntries[3]
	case strings.Contains(q, "payment") || strings.Contains(q, "how long") || strings.Contains(q, "when"):
		return &CannedEntries[4]
	}
	return nil
}

// FallbackAnswer returns a canned answer for the query, or a default inviting
// the user to pick one of the known topics. It always returns a non-empty
// string.
func FallbackAnswer(query string) string {
	if entry := MatchCanned(query); entry != nil {
		return entry.Answer
	}
	return defaultFallbackAnswer
}

// SuggestedQuestions lists the canned questions shown as suggestion chips.
func SuggestedQuestions() []string {
	questions := make([]string, len(CannedEntries))
	for i, entry := range CannedEntries {
		questions[i] = entry.Question
	}
	return questions
}
