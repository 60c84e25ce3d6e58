package protocol

import (
	"errors"
	"testing"
)

func TestUnmarshalEvent_Assistant(t *testing.T) {
	line := `{
		"type": "assistant",
		"message": {
			"content": [
				{"type": "text", "text": "hello"},
				{"type": "server_tool_use", "id": "srv_1", "name": "some_tool"},
				{"type": "tool_use", "name": "Read", "input": {"file_path": "/tmp/a.txt", "limit": 10}}
			]
		}
	}`

	ev, err := UnmarshalEvent([]byte(line))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	assistant, ok := ev.(AssistantEvent)
	if !ok {
		t.Fatalf("expected AssistantEvent, got %T", ev)
	}
	blocks := assistant.Message.Content
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks (unknown dropped), got %d", len(blocks))
	}

	text, ok := blocks[0].(TextBlock)
	if !ok {
		t.Fatalf("expected TextBlock, got %T", blocks[0])
	}
	if text.Text != "hello" {
		t.Errorf("expected text %q, got %q", "hello", text.Text)
	}

	tool, ok := blocks[1].(ToolUseBlock)
	if !ok {
		t.Fatalf("expected ToolUseBlock, got %T", blocks[1])
	}
	if tool.Name != "Read" {
		t.Errorf("expected tool name Read, got %q", tool.Name)
	}
	if tool.Input.FilePath != "/tmp/a.txt" {
		t.Errorf("expected file path /tmp/a.txt, got %q", tool.Input.FilePath)
	}
}

func TestUnmarshalEvent_AssistantEmptyContent(t *testing.T) {
	ev, err := UnmarshalEvent([]byte(`{"type":"assistant","message":{}}`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	assistant, ok := ev.(AssistantEvent)
	if !ok {
		t.Fatalf("expected AssistantEvent, got %T", ev)
	}
	if len(assistant.Message.Content) != 0 {
		t.Errorf("expected no blocks, got %d", len(assistant.Message.Content))
	}
}

func TestUnmarshalEvent_UnknownType(t *testing.T) {
	ev, err := UnmarshalEvent([]byte(`{"type":"system","subtype":"init","session_id":"abc"}`))
	if err != nil {
		t.Fatalf("expected no error for unknown type, got: %v", err)
	}
	unknown, ok := ev.(UnknownEvent)
	if !ok {
		t.Fatalf("expected UnknownEvent, got %T", ev)
	}
	if unknown.Type != "system" {
		t.Errorf("expected type system, got %q", unknown.Type)
	}
}

func TestUnmarshalEvent_Unparseable(t *testing.T) {
	for name, line := range map[string]string{
		"not json":       `this is not json`,
		"missing type":   `{"foo": 1}`,
		"string content": `{"type":"assistant","message":{"content":"just a string"}}`,
		"result no sub":  `{"type":"result","is_error":false}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalEvent([]byte(line))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got: %v", err)
			}
		})
	}
}

func TestUnmarshalEvent_ResultSuccess(t *testing.T) {
	line := `{
		"type": "result",
		"subtype": "success",
		"is_error": false,
		"duration_ms": 65000,
		"duration_api_ms": 60000,
		"num_turns": 3,
		"result": "Merged cleanly.",
		"total_cost_usd": 0.25,
		"usage": {
			"input_tokens": 100,
			"cache_creation_input_tokens": 200,
			"cache_read_input_tokens": 300,
			"output_tokens": 400
		},
		"modelUsage": {
			"claude-sonnet-4-5": {
				"inputTokens": 1500,
				"outputTokens": 2500000,
				"cacheReadInputTokens": 999,
				"cacheCreationInputTokens": 1000,
				"webSearchRequests": 2,
				"costUSD": 0.25,
				"contextWindow": 200000,
				"maxOutputTokens": 64000
			}
		}
	}`

	ev, err := UnmarshalEvent([]byte(line))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	result, ok := ev.(ResultEvent)
	if !ok {
		t.Fatalf("expected ResultEvent, got %T", ev)
	}

	res := result.Result
	if res.Duration().Seconds() != 65 {
		t.Errorf("expected 65s duration, got %s", res.Duration())
	}
	if res.APIDuration().Seconds() != 60 {
		t.Errorf("expected 60s API duration, got %s", res.APIDuration())
	}
	if res.NumTurns != 3 {
		t.Errorf("expected 3 turns, got %d", res.NumTurns)
	}
	if res.TotalCostUSD != 0.25 {
		t.Errorf("expected cost 0.25, got %f", res.TotalCostUSD)
	}
	if res.Usage.OutputTokens != 400 {
		t.Errorf("expected 400 output tokens, got %d", res.Usage.OutputTokens)
	}

	usage, ok := res.ModelUsage["claude-sonnet-4-5"]
	if !ok {
		t.Fatal("expected model usage for claude-sonnet-4-5")
	}
	if usage.InputTokens != 1500 || usage.OutputTokens != 2500000 {
		t.Errorf("unexpected model token counts: %+v", usage)
	}
	if usage.CostUSD != 0.25 {
		t.Errorf("expected model cost 0.25, got %f", usage.CostUSD)
	}
}

func TestUnmarshalEvent_UnknownResultSubtype(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`{"type":"result","subtype":"error_max_turns"}`))

	var unknown *UnknownResultError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownResultError, got: %v", err)
	}
	if unknown.Subtype != "error_max_turns" {
		t.Errorf("expected subtype error_max_turns, got %q", unknown.Subtype)
	}
}

func TestUnmarshalContentBlock_UnknownType(t *testing.T) {
	block, err := UnmarshalContentBlock([]byte(`{"type":"thinking","thinking":"hmm"}`))
	if err != nil {
		t.Fatalf("expected no error for unknown block type, got: %v", err)
	}
	if block != nil {
		t.Fatalf("expected nil block for unknown type, got: %v", block)
	}
}
