package protocol

import "encoding/json"

// ContentBlockType identifies the kind of content block.
type ContentBlockType string

const (
	ContentBlockTypeText    ContentBlockType = "text"
	ContentBlockTypeToolUse ContentBlockType = "tool_use"
)

// ContentBlock is one fragment of assistant output.
type ContentBlock interface {
	BlockType() ContentBlockType
}

// TextBlock is prose or markdown content.
type TextBlock struct {
	Text string `json:"text"`
}

// BlockType returns the block type.
func (TextBlock) BlockType() ContentBlockType { return ContentBlockTypeText }

// ToolUseBlock is a tool invocation. Only the fields needed for the
// transcript are modeled; the rest of the input is ignored.
type ToolUseBlock struct {
	Name  string    `json:"name"`
	Input ToolInput `json:"input"`
}

// BlockType returns the block type.
func (ToolUseBlock) BlockType() ContentBlockType { return ContentBlockTypeToolUse }

// ToolInput is the subset of tool input the transcript displays.
type ToolInput struct {
	FilePath string `json:"file_path"`
}

// ContentBlocks unmarshals a content array, silently dropping block types
// this tool does not model. New block kinds therefore never break parsing.
type ContentBlocks []ContentBlock

// UnmarshalJSON implements json.Unmarshaler.
func (b *ContentBlocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	blocks := make(ContentBlocks, 0, len(raws))
	for _, raw := range raws {
		block, err := UnmarshalContentBlock(raw)
		if err != nil {
			return err
		}
		if block != nil {
			blocks = append(blocks, block)
		}
	}
	*b = blocks
	return nil
}

// UnmarshalContentBlock parses a single content block. Unknown block types
// return (nil, nil).
func UnmarshalContentBlock(data json.RawMessage) (ContentBlock, error) {
	var base struct {
		Type ContentBlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, err
	}

	switch base.Type {
	case ContentBlockTypeText:
		var block TextBlock
		if err := json.Unmarshal(data, &block); err != nil {
			return nil, err
		}
		return block, nil
	case ContentBlockTypeToolUse:
		var block ToolUseBlock
		if err := json.Unmarshal(data, &block); err != nil {
			return nil, err
		}
		return block, nil
	default:
		return nil, nil
	}
}
