package chatbot

// The Lex V2 code hook contract. aws-lambda-go only ships the V1 shapes.

const (
	DialogCodeHook      = "DialogCodeHook"
	FulfillmentCodeHook = "FulfillmentCodeHook"

	ActionClose        = "Close"
	ActionDelegate     = "Delegate"
	ActionElicitIntent = "ElicitIntent"
	ActionElicitSlot   = "ElicitSlot"

	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"

	PlainText = "PlainText"
)

type Event struct {
	MessageVersion      string           `json:"messageVersion"`
	InvocationSource    string           `json:"invocationSource"`
	InputMode           string           `json:"inputMode,omitempty"`
	ResponseContentType string           `json:"responseContentType,omitempty"`
	SessionID           string           `json:"sessionId"`
	InputTranscript     string           `json:"inputTranscript"`
	Bot                 Bot              `json:"bot"`
	Interpretations     []Interpretation `json:"interpretations,omitempty"`
	SessionState        SessionState     `json:"sessionState"`
}

type Bot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AliasID  string `json:"aliasId"`
	LocaleID string `json:"localeId"`
	Version  string `json:"version"`
}

type Interpretation struct {
	Intent        Intent   `json:"intent"`
	NLUConfidence *float64 `json:"nluConfidence,omitempty"`
}

type SessionState struct {
	ActiveContexts    []ActiveContext   `json:"activeContexts,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            *Intent           `json:"intent,omitempty"`
}

type ActiveContext struct {
	Name              string            `json:"name"`
	ContextAttributes map[string]string `json:"contextAttributes,omitempty"`
	TimeToLive        map[string]int    `json:"timeToLive,omitempty"`
}

type Intent struct {
	Name              string           `json:"name"`
	Slots             map[string]*Slot `json:"slots,omitempty"`
	State             string           `json:"state,omitempty"`
	ConfirmationState string           `json:"confirmationState,omitempty"`
}

type Slot struct {
	Value *SlotValue `json:"value,omitempty"`
}

type SlotValue struct {
	OriginalValue    string   `json:"originalValue,omitempty"`
	InterpretedValue string   `json:"interpretedValue,omitempty"`
	ResolvedValues   []string `json:"resolvedValues,omitempty"`
}

type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type Response struct {
	SessionState SessionState `json:"sessionState"`
	Messages     []Message    `json:"messages,omitempty"`
}

// SlotText returns the interpreted value of a filled slot.
func (i Intent) SlotText(name string) string {
	s, ok := i.Slots[name]
	if !ok || s == nil || s.Value == nil {
		return ""
	}
	if s.Value.InterpretedValue != "" {
		return s.Value.InterpretedValue
	}
	return s.Value.OriginalValue
}

func text(content string) []Message {
	return []Message{{ContentType: PlainText, Content: content}}
}

func state(e Event, intent Intent, action DialogAction) SessionState {
	return SessionState{
		ActiveContexts:    e.SessionState.ActiveContexts,
		SessionAttributes: e.SessionState.SessionAttributes,
		DialogAction:      &action,
		Intent:            &intent,
	}
}

// Close ends the conversation for intent with content.
func Close(e Event, intent Intent, fulfillment, content string) Response {
	intent.State = fulfillment
	return Response{SessionState: state(e, intent, DialogAction{Type: ActionClose}), Messages: text(content)}
}

// ElicitIntent asks the user what they want to do next.
func ElicitIntent(e Event, intent Intent, content string) Response {
	return Response{SessionState: state(e, intent, DialogAction{Type: ActionElicitIntent}), Messages: text(content)}
}

// ElicitSlot asks for slot again. An empty content lets Lex use the slot's
// own prompt.
func ElicitSlot(e Event, intent Intent, slot, content string) Response {
	r := Response{SessionState: state(e, intent, DialogAction{Type: ActionElicitSlot, SlotToElicit: slot})}
	if content != "" {
		r.Messages = text(content)
	}
	return r
}

// Delegate hands the next step back to Lex.
func Delegate(e Event, intent Intent) Response {
	return Response{SessionState: state(e, intent, DialogAction{Type: ActionDelegate})}
}
