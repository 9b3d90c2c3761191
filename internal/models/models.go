package models

import "encoding/json"

// The json tag names are the wire contract with the platform; do not rename them.

const (
	TypeIntentRequest = "IntentRequest"
	TypeLaunchRequest = "LaunchRequest"
)

// BusinessInput is one inbound turn. It is built by DecodeInput and not
// modified afterwards.
type BusinessInput struct {
	RequestType      string              `json:"request_type"`
	Action           string              `json:"action"`
	UserID           string              `json:"user_id"`
	SessionID        string              `json:"session_id"`
	DeviceSize       string              `json:"device_size"`
	IsDisplayEnabled bool                `json:"is_display_enabled"`
	IsNewSession     bool                `json:"is_new_session"`
	Locale           string              `json:"locale"`
	Args             []map[string]string `json:"args"`
	Extras           map[string]Value    `json:"extras,omitempty"`
}

// ActionType resolves Action against the canonical tokens. Matching is exact
// and case-sensitive; anything else is ActionUnknown.
func (in BusinessInput) ActionType() ActionType {
	return ParseActionType(in.Action)
}

// Arg returns the first value stored under name across the ordered args.
func (in BusinessInput) Arg(name string) (string, bool) {
	for _, arg := range in.Args {
		if v, ok := arg[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Extra returns the extras entry stored under name.
func (in BusinessInput) Extra(name string) (Value, bool) {
	v, ok := in.Extras[name]
	return v, ok
}

func (in BusinessInput) MarshalJSON() ([]byte, error) {
	type wire BusinessInput
	w := wire(in)
	if w.Args == nil {
		w.Args = []map[string]string{}
	}
	return json.Marshal(w)
}

func (in *BusinessInput) UnmarshalJSON(data []byte) error {
	v, err := DecodeInput(data)
	if err != nil {
		return err
	}
	*in = v
	return nil
}

// BusinessOutput accumulates the reply to a turn. Every field starts unset,
// and unset fields are left out of the encoded payload.
type BusinessOutput struct {
	shouldEndSession *bool
	promptSpeech     *string
	repromptSpeech   *string
	commands         []ResponseCommand
	commandsSet      bool
}

func NewBusinessOutput() *BusinessOutput {
	return &BusinessOutput{}
}

func (o *BusinessOutput) SetShouldEndSession(end bool) {
	o.shouldEndSession = &end
}

func (o *BusinessOutput) SetPromptSpeech(speech string) {
	o.promptSpeech = &speech
}

// SetRepromptSpeech is not checked against should_end_session.
func (o *BusinessOutput) SetRepromptSpeech(speech string) {
	o.repromptSpeech = &speech
}

// AddCommand appends cmd; commands are encoded in append order.
func (o *BusinessOutput) AddCommand(cmd ResponseCommand) {
	o.commands = append(o.commands, cmd)
	o.commandsSet = true
}

// SetCommands replaces the command list. An empty, non-nil list is encoded
// as []; nil unsets the field.
func (o *BusinessOutput) SetCommands(cmds []ResponseCommand) {
	o.commands = cmds
	o.commandsSet = cmds != nil
}

func (o *BusinessOutput) ShouldEndSession() (bool, bool) {
	if o.shouldEndSession == nil {
		return false, false
	}
	return *o.shouldEndSession, true
}

func (o *BusinessOutput) PromptSpeech() (string, bool) {
	if o.promptSpeech == nil {
		return "", false
	}
	return *o.promptSpeech, true
}

func (o *BusinessOutput) RepromptSpeech() (string, bool) {
	if o.repromptSpeech == nil {
		return "", false
	}
	return *o.repromptSpeech, true
}

func (o *BusinessOutput) Commands() []ResponseCommand {
	return o.commands
}

type outputWire struct {
	ShouldEndSession *bool              `json:"should_end_session,omitempty"`
	PromptSpeech     *string            `json:"prompt_speech,omitempty"`
	RepromptSpeech   *string            `json:"reprompt_speech,omitempty"`
	Commands         *[]ResponseCommand `json:"commands,omitempty"`
}

func (o BusinessOutput) MarshalJSON() ([]byte, error) {
	w := outputWire{
		ShouldEndSession: o.shouldEndSession,
		PromptSpeech:     o.promptSpeech,
		RepromptSpeech:   o.repromptSpeech,
	}
	if o.commandsSet {
		cmds := o.commands
		if cmds == nil {
			cmds = []ResponseCommand{}
		}
		w.Commands = &cmds
	}
	return json.Marshal(w)
}

func (o *BusinessOutput) UnmarshalJSON(data []byte) error {
	v, err := DecodeOutput(data)
	if err != nil {
		return err
	}
	*o = *v
	return nil
}

// ResponseCommand is one device or session side effect. Which payload slots
// make sense for which command type is up to the caller.
type ResponseCommand struct {
	commandType string
	keys        map[string]string
	data        map[string]Value
	listData    []map[string]Value
	random      map[string]Value
}

// NewResponseCommand returns a command of type t with every payload slot unset.
// An invalid t is written as "ResponseCommandType(N)" so it stays visible.
func NewResponseCommand(t ResponseCommandType) ResponseCommand {
	return ResponseCommand{commandType: t.String()}
}

// NewSessionAttributesCommand persists keys as session attributes.
func NewSessionAttributesCommand(keys map[string]string) ResponseCommand {
	cmd := NewResponseCommand(CommandSetSessionAttribute)
	cmd.SetKeys(keys)
	return cmd
}

func NewControlMediaCommand(keys map[string]string) ResponseCommand {
	cmd := NewResponseCommand(CommandControlMedia)
	cmd.SetKeys(keys)
	return cmd
}

// Type returns the raw command_type token as it appears on the wire.
func (c ResponseCommand) Type() string {
	return c.commandType
}

// CommandType resolves the raw token; ok is false for unrecognized tokens.
func (c ResponseCommand) CommandType() (ResponseCommandType, bool) {
	return LookupResponseCommandType(c.commandType)
}

// Setting a nil slot unsets it.

func (c *ResponseCommand) SetKeys(keys map[string]string) {
	c.keys = keys
}

func (c *ResponseCommand) SetData(data map[string]Value) {
	c.data = data
}

func (c *ResponseCommand) SetListData(listData []map[string]Value) {
	c.listData = listData
}

func (c *ResponseCommand) SetRandom(random map[string]Value) {
	c.random = random
}

func (c ResponseCommand) Keys() map[string]string {
	return c.keys
}

func (c ResponseCommand) Data() map[string]Value {
	return c.data
}

func (c ResponseCommand) ListData() []map[string]Value {
	return c.listData
}

func (c ResponseCommand) Random() map[string]Value {
	return c.random
}

type commandWire struct {
	CommandType *string             `json:"command_type"`
	Keys        *map[string]string  `json:"keys,omitempty"`
	Data        *map[string]Value   `json:"data,omitempty"`
	ListData    *[]map[string]Value `json:"list_data,omitempty"`
	Random      *map[string]Value   `json:"random,omitempty"`
}

func (c ResponseCommand) MarshalJSON() ([]byte, error) {
	w := commandWire{CommandType: &c.commandType}
	if c.keys != nil {
		w.Keys = &c.keys
	}
	if c.data != nil {
		w.Data = &c.data
	}
	if c.listData != nil {
		w.ListData = &c.listData
	}
	if c.random != nil {
		w.Random = &c.random
	}
	return json.Marshal(w)
}

func (c *ResponseCommand) UnmarshalJSON(data []byte) error {
	v, err := DecodeCommand(data)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
