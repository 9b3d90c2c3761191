package models

import "fmt"

// ResponseCommandType is the side effect the platform performs on the
// device or in the session.
type ResponseCommandType uint8

const (
	CommandSendEvent ResponseCommandType = iota
	CommandControlMedia
	CommandAplRenderTemplate
	CommandAplaRenderTemplate
	CommandSetSessionAttribute

	commandTypeCount
)

var commandTokens = [...]string{
	CommandSendEvent:           "SEND_EVENT",
	CommandControlMedia:        "CONTROL_MEDIA",
	CommandAplRenderTemplate:   "APL_RENDER_TEMPLATE",
	CommandAplaRenderTemplate:  "APLA_RENDER_TEMPLATE",
	CommandSetSessionAttribute: "SET_SESSION_ATTRIBUTES",
}

// Fails to compile when a variant is added without a token.
func _() {
	var x [1]struct{}
	_ = x[len(commandTokens)-int(commandTypeCount)]
}

var commandsByToken = func() map[string]ResponseCommandType {
	m := make(map[string]ResponseCommandType, len(commandTokens))
	for i, token := range commandTokens {
		m[token] = ResponseCommandType(i)
	}
	return m
}()

// ResponseCommandTypes returns every variant in declaration order.
func ResponseCommandTypes() []ResponseCommandType {
	out := make([]ResponseCommandType, 0, commandTypeCount)
	for c := ResponseCommandType(0); c < commandTypeCount; c++ {
		out = append(out, c)
	}
	return out
}

// LookupResponseCommandType reports the variant for an exact, case-sensitive
// token. There is no fallback variant, so callers get ok == false instead.
func LookupResponseCommandType(token string) (ResponseCommandType, bool) {
	c, ok := commandsByToken[token]
	return c, ok
}

func (c ResponseCommandType) Valid() bool {
	return c < commandTypeCount
}

// Token returns the canonical wire token.
func (c ResponseCommandType) Token() string {
	if !c.Valid() {
		return ""
	}
	return commandTokens[c]
}

func (c ResponseCommandType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ResponseCommandType(%d)", uint8(c))
	}
	return commandTokens[c]
}

func (c ResponseCommandType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("models: invalid response command type %d", uint8(c))
	}
	return []byte(commandTokens[c]), nil
}

// UnmarshalText never fails: an unrecognized token leaves c unchanged.
// Use LookupResponseCommandType to tell the two cases apart.
func (c *ResponseCommandType) UnmarshalText(text []byte) error {
	if v, ok := commandsByToken[string(text)]; ok {
		*c = v
	}
	return nil
}
