package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const launchPayload = `{
	"request_type": "IntentRequest",
	"action": "LAUNCH",
	"user_id": "u1",
	"session_id": "s1",
	"device_size": "large",
	"is_display_enabled": true,
	"is_new_session": true,
	"locale": "en-US",
	"args": [],
	"extras": null
}`

// without drops a top-level field from launchPayload.
func without(t *testing.T, field string) []byte {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(launchPayload), &m))
	delete(m, field)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

// with replaces a top-level field of launchPayload with raw JSON.
func with(t *testing.T, field, raw string) []byte {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(launchPayload), &m))
	m[field] = json.RawMessage(raw)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestDecodeInput(t *testing.T) {
	in, err := DecodeInput([]byte(launchPayload))
	require.NoError(t, err)

	assert.Equal(t, "IntentRequest", in.RequestType)
	assert.Equal(t, "LAUNCH", in.Action)
	assert.Equal(t, ActionLaunch, in.ActionType())
	assert.Equal(t, "u1", in.UserID)
	assert.Equal(t, "s1", in.SessionID)
	assert.Equal(t, "large", in.DeviceSize)
	assert.True(t, in.IsDisplayEnabled)
	assert.True(t, in.IsNewSession)
	assert.Equal(t, "en-US", in.Locale)
	assert.Empty(t, in.Args)
	assert.Nil(t, in.Extras)
}

func TestDecodeInputRequiredFields(t *testing.T) {
	fields := []string{
		"request_type", "action", "user_id", "session_id", "device_size",
		"is_display_enabled", "is_new_session", "locale", "args",
	}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			_, err := DecodeInput(without(t, field))
			require.Error(t, err)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, field, de.Field)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), field)
		})
	}

	t.Run("extras_optional", func(t *testing.T) {
		in, err := DecodeInput(without(t, "extras"))
		require.NoError(t, err)
		assert.Nil(t, in.Extras)
	})
}

func TestDecodeInputTypeMismatch(t *testing.T) {
	testCases := []struct {
		name  string
		field string
		raw   string
		path  string
	}{
		{name: "user_id_number", field: "user_id", raw: `42`, path: "user_id"},
		{name: "user_id_null", field: "user_id", raw: `null`, path: "user_id"},
		{name: "display_string", field: "is_display_enabled", raw: `"true"`, path: "is_display_enabled"},
		{name: "new_session_null", field: "is_new_session", raw: `null`, path: "is_new_session"},
		{name: "args_object", field: "args", raw: `{"slot":"city"}`, path: "args"},
		{name: "args_item_string", field: "args", raw: `[{"slot":"city"},"austin"]`, path: "args[1]"},
		{name: "args_item_null", field: "args", raw: `[null]`, path: "args[0]"},
		{name: "args_value_number", field: "args", raw: `[{"count":3}]`, path: "args[0].count"},
		{name: "extras_list", field: "extras", raw: `[1,2]`, path: "extras"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeInput(with(t, tc.field, tc.raw))
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.path, de.Field)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestDecodeInputMalformed(t *testing.T) {
	for _, body := range []string{``, `{"user_id":`, `[]`, `null`, `"LAUNCH"`} {
		_, err := DecodeInput([]byte(body))
		var de *DecodeError
		require.ErrorAs(t, err, &de, "body %q", body)
		assert.Empty(t, de.Field)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestDecodeInputArgsOrder(t *testing.T) {
	in, err := DecodeInput(with(t, "args", `[{"slot":"city"},{"value":"austin"},{"slot":"city"}]`))
	require.NoError(t, err)

	require.Len(t, in.Args, 3)
	assert.Equal(t, map[string]string{"slot": "city"}, in.Args[0])
	assert.Equal(t, map[string]string{"value": "austin"}, in.Args[1])
	assert.Equal(t, map[string]string{"slot": "city"}, in.Args[2])

	v, ok := in.Arg("value")
	assert.True(t, ok)
	assert.Equal(t, "austin", v)

	_, ok = in.Arg("missing")
	assert.False(t, ok)
}

func TestDecodeInputExtras(t *testing.T) {
	in, err := DecodeInput(with(t, "extras", `{"device":{"id":"d-1","caps":["audio","screen"]},"volume":7}`))
	require.NoError(t, err)

	device, ok := in.Extra("device")
	require.True(t, ok)
	id, ok := device.Get("id")
	require.True(t, ok)
	s, _ := id.AsString()
	assert.Equal(t, "d-1", s)

	volume, ok := in.Extra("volume")
	require.True(t, ok)
	n, ok := volume.AsInt()
	assert.True(t, ok)
	assert.EqualValues(t, 7, n)
}

func TestDecodeInputUnknownAction(t *testing.T) {
	in, err := DecodeInput(with(t, "action", `"XYZZY"`))
	require.NoError(t, err)
	assert.Equal(t, "XYZZY", in.Action)
	assert.Equal(t, ActionUnknown, in.ActionType())
}

func TestBusinessInputJSON(t *testing.T) {
	var in BusinessInput
	require.NoError(t, json.Unmarshal([]byte(launchPayload), &in))

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "extras")
	assert.Contains(t, string(b), `"args":[]`)

	var again BusinessInput
	require.NoError(t, json.Unmarshal(b, &again))
	assert.Equal(t, in.UserID, again.UserID)
	assert.Equal(t, in.IsNewSession, again.IsNewSession)

	err = json.Unmarshal(without(t, "locale"), &again)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "locale", de.Field)
}

func TestBusinessOutputEncode(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b, err := json.Marshal(NewBusinessOutput())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})

	t.Run("only_set_fields", func(t *testing.T) {
		out := NewBusinessOutput()
		out.SetShouldEndSession(false)
		out.SetPromptSpeech("")

		b, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{"should_end_session":false,"prompt_speech":""}`, string(b))
		assert.NotContains(t, string(b), "null")
	})

	t.Run("no_conflict_checks", func(t *testing.T) {
		out := NewBusinessOutput()
		out.SetShouldEndSession(true)
		out.SetRepromptSpeech("still there?")

		b, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{"should_end_session":true,"reprompt_speech":"still there?"}`, string(b))
	})

	t.Run("command_order", func(t *testing.T) {
		out := NewBusinessOutput()
		out.AddCommand(NewResponseCommand(CommandSetSessionAttribute))
		out.AddCommand(NewResponseCommand(CommandControlMedia))
		out.AddCommand(NewResponseCommand(CommandSendEvent))

		b, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{"commands":[
			{"command_type":"SET_SESSION_ATTRIBUTES"},
			{"command_type":"CONTROL_MEDIA"},
			{"command_type":"SEND_EVENT"}
		]}`, string(b))
	})

	t.Run("empty_commands", func(t *testing.T) {
		out := NewBusinessOutput()
		out.SetCommands([]ResponseCommand{})

		b, err := json.Marshal(out)
		require.NoError(t, err)
		assert.Equal(t, `{"commands":[]}`, string(b))

		out.SetCommands(nil)
		b, err = json.Marshal(out)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})
}

func TestDecodeOutput(t *testing.T) {
	out := NewBusinessOutput()
	out.SetPromptSpeech("Welcome back")
	out.SetRepromptSpeech("What next?")
	out.SetShouldEndSession(false)
	out.AddCommand(NewSessionAttributesCommand(map[string]string{"step": "2"}))

	b, err := json.Marshal(out)
	require.NoError(t, err)

	var got BusinessOutput
	require.NoError(t, json.Unmarshal(b, &got))

	speech, ok := got.PromptSpeech()
	assert.True(t, ok)
	assert.Equal(t, "Welcome back", speech)

	reprompt, ok := got.RepromptSpeech()
	assert.True(t, ok)
	assert.Equal(t, "What next?", reprompt)

	end, ok := got.ShouldEndSession()
	assert.True(t, ok)
	assert.False(t, end)

	require.Len(t, got.Commands(), 1)
	assert.Equal(t, "SET_SESSION_ATTRIBUTES", got.Commands()[0].Type())

	t.Run("nulls_are_unset", func(t *testing.T) {
		got, err := DecodeOutput([]byte(`{"prompt_speech":null,"commands":null}`))
		require.NoError(t, err)
		_, ok := got.PromptSpeech()
		assert.False(t, ok)
		assert.Nil(t, got.Commands())
	})

	t.Run("bad_command", func(t *testing.T) {
		_, err := DecodeOutput([]byte(`{"commands":[{"command_type":"SEND_EVENT"},{"keys":{}}]}`))
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "commands[1].command_type", de.Field)
		assert.True(t, strings.HasPrefix(err.Error(), "models: decode commands[1]"))
	})
}
