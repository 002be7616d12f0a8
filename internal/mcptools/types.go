package mcptools

// DateInput selects an entry by date. An empty date means today.
type DateInput struct {
	Date string `json:"date,omitempty" jsonschema:"entry date as YYYY-MM-DD, defaults to today"`
}

// EntryOutput is the output schema for the get_entry MCP tool.
type EntryOutput struct {
	Date        string `json:"date"`
	ID          string `json:"id,omitempty"`
	Label       string `json:"label"`
	Content     string `json:"content"`
	IsEmpty     bool   `json:"is_empty"`
	Hint        string `json:"hint"`
	Inspiration string `json:"inspiration"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// SaveEntryInput is the input schema for the save_entry MCP tool.
type SaveEntryInput struct {
	Date    string `json:"date,omitempty" jsonschema:"entry date as YYYY-MM-DD, defaults to today"`
	Content string `json:"content" jsonschema:"full entry text, replaces what is stored"`
}

// SaveEntryOutput is the output schema for the save_entry MCP tool.
type SaveEntryOutput struct {
	Date    string `json:"date"`
	ID      string `json:"id"`
	Preview string `json:"preview"`
}

// ShareOutput is the output schema for the share_entry MCP tool.
type ShareOutput struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// PromptOutput is the output schema for the draw_prompt MCP tool.
type PromptOutput struct {
	Date   string `json:"date"`
	Prompt string `json:"prompt"`
}

// ListInput is the input schema for the list_entries MCP tool.
type ListInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"ISO date lower bound (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"ISO date upper bound (inclusive)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

// ListOutput is the output schema for the list_entries MCP tool.
type ListOutput struct {
	Entries []EntryResult `json:"entries"`
}

// EntryResult is one entry in list_entries output.
type EntryResult struct {
	Date    string `json:"date"`
	ID      string `json:"id"`
	Preview string `json:"preview"`
}
