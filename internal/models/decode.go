package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var jsonNull = []byte("null")

// object is a payload split into top-level fields, still undecoded.
type object map[string]json.RawMessage

func parseObject(field string, data []byte) (object, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		if field == "" {
			if !json.Valid(data) {
				return nil, malformed(errors.New("invalid JSON"))
			}
			return nil, malformed(errors.New("payload is not an object"))
		}
		return nil, mismatch(field, "object")
	}
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		if field == "" {
			return nil, malformed(err)
		}
		return nil, mismatch(field, "object")
	}
	return obj, nil
}

// required returns the raw value of name, rejecting absent and null values.
func (o object) required(name string) (json.RawMessage, error) {
	raw, ok := o[name]
	if !ok {
		return nil, missing(name)
	}
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, &DecodeError{Field: name, Err: fmt.Errorf("%w: null", ErrTypeMismatch)}
	}
	return raw, nil
}

// optional returns the raw value of name; absent and null are both unset.
func (o object) optional(name string) (json.RawMessage, bool) {
	raw, ok := o[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, false
	}
	return raw, true
}

func (o object) str(name string, dst *string) error {
	raw, err := o.required(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return mismatch(name, "string")
	}
	return nil
}

func (o object) boolean(name string, dst *bool) error {
	raw, err := o.required(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return mismatch(name, "bool")
	}
	return nil
}

// DecodeInput decodes one inbound turn. Every field except extras is
// required. The action token is not checked here, see BusinessInput.ActionType.
func DecodeInput(data []byte) (BusinessInput, error) {
	var in BusinessInput

	obj, err := parseObject("", data)
	if err != nil {
		return BusinessInput{}, err
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"request_type", &in.RequestType},
		{"action", &in.Action},
		{"user_id", &in.UserID},
		{"session_id", &in.SessionID},
		{"device_size", &in.DeviceSize},
		{"locale", &in.Locale},
	}
	for _, f := range strs {
		if err := obj.str(f.name, f.dst); err != nil {
			return BusinessInput{}, err
		}
	}
	if err := obj.boolean("is_display_enabled", &in.IsDisplayEnabled); err != nil {
		return BusinessInput{}, err
	}
	if err := obj.boolean("is_new_session", &in.IsNewSession); err != nil {
		return BusinessInput{}, err
	}

	if in.Args, err = decodeArgs(obj); err != nil {
		return BusinessInput{}, err
	}

	if raw, ok := obj.optional("extras"); ok {
		if in.Extras, err = decodeValueMap("extras", raw); err != nil {
			return BusinessInput{}, err
		}
	}

	return in, nil
}

func decodeArgs(obj object) ([]map[string]string, error) {
	raw, err := obj.required("args")
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, mismatch("args", "array")
	}

	args := make([]map[string]string, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("args[%d]", i)
		fields, err := parseObject(path, item)
		if err != nil {
			return nil, err
		}
		arg := make(map[string]string, len(fields))
		for key := range fields {
			var v string
			if err := fields.str(key, &v); err != nil {
				return nil, nested(path, err)
			}
			arg[key] = v
		}
		args = append(args, arg)
	}
	return args, nil
}

func decodeValueMap(field string, raw json.RawMessage) (map[string]Value, error) {
	fields, err := parseObject(field, raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(fields))
	for key, item := range fields {
		var v Value
		if err := v.UnmarshalJSON(item); err != nil {
			return nil, &DecodeError{Field: field + "." + key, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		out[key] = v
	}
	return out, nil
}

// DecodeOutput decodes an encoded reply. Absent and null fields stay unset.
func DecodeOutput(data []byte) (*BusinessOutput, error) {
	obj, err := parseObject("", data)
	if err != nil {
		return nil, err
	}

	out := NewBusinessOutput()
	if raw, ok := obj.optional("should_end_session"); ok {
		var end bool
		if err := json.Unmarshal(raw, &end); err != nil {
			return nil, mismatch("should_end_session", "bool")
		}
		out.SetShouldEndSession(end)
	}
	if raw, ok := obj.optional("prompt_speech"); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, mismatch("prompt_speech", "string")
		}
		out.SetPromptSpeech(s)
	}
	if raw, ok := obj.optional("reprompt_speech"); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, mismatch("reprompt_speech", "string")
		}
		out.SetRepromptSpeech(s)
	}
	if raw, ok := obj.optional("commands"); ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, mismatch("commands", "array")
		}
		cmds := make([]ResponseCommand, 0, len(items))
		for i, item := range items {
			cmd, err := DecodeCommand(item)
			if err != nil {
				return nil, nested(fmt.Sprintf("commands[%d]", i), err)
			}
			cmds = append(cmds, cmd)
		}
		out.SetCommands(cmds)
	}
	return out, nil
}

// DecodeCommand decodes one command. command_type is kept as the raw token,
// so unrecognized command types still decode.
func DecodeCommand(data []byte) (ResponseCommand, error) {
	obj, err := parseObject("", data)
	if err != nil {
		return ResponseCommand{}, err
	}

	var cmd ResponseCommand
	if err := obj.str("command_type", &cmd.commandType); err != nil {
		return ResponseCommand{}, err
	}

	if raw, ok := obj.optional("keys"); ok {
		fields, err := parseObject("keys", raw)
		if err != nil {
			return ResponseCommand{}, err
		}
		keys := make(map[string]string, len(fields))
		for key := range fields {
			var v string
			if err := fields.str(key, &v); err != nil {
				return ResponseCommand{}, nested("keys", err)
			}
			keys[key] = v
		}
		cmd.keys = keys
	}
	if raw, ok := obj.optional("data"); ok {
		if cmd.data, err = decodeValueMap("data", raw); err != nil {
			return ResponseCommand{}, err
		}
	}
	if raw, ok := obj.optional("list_data"); ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ResponseCommand{}, mismatch("list_data", "array")
		}
		listData := make([]map[string]Value, 0, len(items))
		for i, item := range items {
			m, err := decodeValueMap(fmt.Sprintf("list_data[%d]", i), item)
			if err != nil {
				return ResponseCommand{}, err
			}
			listData = append(listData, m)
		}
		cmd.listData = listData
	}
	if raw, ok := obj.optional("random"); ok {
		if cmd.random, err = decodeValueMap("random", raw); err != nil {
			return ResponseCommand{}, err
		}
	}
	return cmd, nil
}
