// Package chatbot is the code hook of the card services bot. It routes Lex
// V2 requests by intent, answers FAQ questions from the search index and
// keeps that index fed with uploaded PDF documents.
package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/amirasaad/finlabs/pkg/search"
)

// Intents handled by the bot.
const (
	IntentFallback          = "FallbackIntent"
	IntentCardServicesFAQ   = "CardServicesFAQ"
	IntentCardAuth          = "CardAuth"
	IntentCheckBalance      = "CheckBalance"
	IntentPayCardBill       = "PayCardBill"
	IntentReportMissingCard = "ReportMissingCard"
	IntentRepeat            = "Repeat"
)

const (
	// KeywordSlot holds the FAQ topic.
	KeywordSlot = "SearchKeyword"

	searchSize      = 2
	excerptLength   = 200
	minUtterance    = 3
	intentThreshold = 0.6
)

var acceptedKeywords = map[string]bool{
	"card benefits":       true,
	"card interest rates": true,
}

const (
	engagingPrompt  = "What can I do for you?"
	didNotFollow    = "I didn't quite catch that. "
	defaultFallback = "You can ask me about card benefits, your balance, paying your card bill or a missing card."

	invalidKeyword = "I can search for card benefits or card interest rates. Which one would you like to know about?"
	searchSuccess1 = "Here is what I found:"
	searchSuccess2 = "You can read the full document at "
	searchFailure  = "Sorry, I could not find a document about that."
)

// intentPrompts nudge the user towards the intent the fallback thinks they
// meant.
var intentPrompts = map[string]string{
	IntentCardAuth:          "Did you want to verify your card? Say 'authenticate my card'.",
	IntentCheckBalance:      "Did you want to check your balance? Say 'check my balance'.",
	IntentPayCardBill:       "Did you want to pay your card bill? Say 'pay my card bill'.",
	IntentCardServicesFAQ:   "Did you have a question about your card? Ask me about card benefits or card interest rates.",
	IntentReportMissingCard: "Did you want to report a missing card? Say 'I lost my card'.",
	IntentRepeat:            "Did you want me to repeat that? Say 'repeat'.",
}

// closingMessages answer the intents whose back office is not connected.
var closingMessages = map[string]string{
	IntentCardAuth:          "Thank you, your card has been verified.",
	IntentCheckBalance:      "Your balance is available in the mobile app under Accounts.",
	IntentPayCardBill:       "Your card payment has been scheduled.",
	IntentReportMissingCard: "Your card has been blocked and a replacement is on its way.",
	IntentRepeat:            "Sorry, I have nothing to repeat yet.",
}

// Searcher finds documents for a free-text query.
type Searcher interface {
	Search(ctx context.Context, text string, size int) (search.Result, error)
}

type Handler struct {
	search Searcher
	logger *slog.Logger
}

func New(s Searcher, logger *slog.Logger) *Handler {
	return &Handler{search: s, logger: common.Logger(logger)}
}

// Dispatch routes e to the handler of its intent. Unknown intents are
// delegated back to Lex.
func (h *Handler) Dispatch(ctx context.Context, e Event) (Response, error) {
	var intent Intent
	if e.SessionState.Intent != nil {
		intent = *e.SessionState.Intent
	}
	if e.SessionState.SessionAttributes == nil {
		e.SessionState.SessionAttributes = map[string]string{}
	}
	e.SessionState.SessionAttributes["sessionId"] = e.SessionID

	h.logger.Debug("Intent received", "intent", intent.Name, "source", e.InvocationSource, "session_id", e.SessionID)
	switch intent.Name {
	case IntentFallback:
		return h.Fallback(e, intent), nil
	case IntentCardServicesFAQ:
		return h.FAQ(ctx, e, intent)
	}
	if msg, ok := closingMessages[intent.Name]; ok {
		return Close(e, intent, StateFulfilled, msg), nil
	}
	return Delegate(e, intent), nil
}

// Fallback re-prompts after an utterance no intent matched. When Lex's next
// best interpretation is confident enough the prompt steers towards it.
func (h *Handler) Fallback(e Event, intent Intent) Response {
	if utf8.RuneCountInString(e.InputTranscript) < minUtterance {
		return ElicitIntent(e, intent, engagingPrompt)
	}
	message := didNotFollow + defaultFallback
	if len(e.Interpretations) > 1 {
		nearest := e.Interpretations[1]
		if nearest.NLUConfidence != nil && *nearest.NLUConfidence > intentThreshold {
			if prompt, ok := intentPrompts[nearest.Intent.Name]; ok {
				message = prompt
			}
		}
	}
	return ElicitIntent(e, intent, message)
}

// FAQ validates the keyword slot while the dialog runs and answers from
// the search index once it is filled.
func (h *Handler) FAQ(ctx context.Context, e Event, intent Intent) (Response, error) {
	keyword := intent.SlotText(KeywordSlot)
	if e.InvocationSource == DialogCodeHook {
		if keyword == "" {
			return ElicitSlot(e, intent, KeywordSlot, ""), nil
		}
		if !acceptedKeywords[keyword] {
			h.logger.Debug("Search keyword is not supported", "keyword", keyword)
			return ElicitSlot(e, intent, KeywordSlot, invalidKeyword), nil
		}
	}

	res, err := h.search.Search(ctx, keyword, searchSize)
	if err != nil {
		h.logger.Error("FAQ search failed", "keyword", keyword, "error", err)
		return Response{}, fmt.Errorf("search %q: %w", keyword, err)
	}
	if res.Total == 0 || len(res.Hits) == 0 {
		return Close(e, intent, StateFulfilled, searchFailure), nil
	}
	top := res.Hits[0].Source
	answer := searchSuccess1 + "\n" + excerpt(top.Attachment.Content) + "\n" + searchSuccess2 + top.FilePath
	return Close(e, intent, StateFulfilled, answer), nil
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLength {
		return s
	}
	return string(r[:excerptLength])
}
