// Package youtube maps MCP tool invocations onto the YouTube138 RapidAPI endpoints.
package youtube

// Tool names exposed to MCP clients.
const (
	ToolSearch       = "search"
	ToolAutoComplete = "auto_complete"
	ToolHome         = "home"
)

// Param describes one tool argument.
type Param struct {
	Name        string
	Type        string // always "string" for the current tools
	Description string
	Default     string
	Required    bool
}

// ToolDescriptor describes a tool and the upstream endpoint it resolves to.
type ToolDescriptor struct {
	Name        string
	Description string
	Path        string
	Params      []Param
}

// RequiredParams returns the names of the required parameters in declaration order.
func (d ToolDescriptor) RequiredParams() []string {
	var names []string
	for _, p := range d.Params {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

var (
	hlParam = Param{
		Name:        "hl",
		Type:        "string",
		Description: "Language code (optional), e.g. 'en' (English), 'zh' (Chinese). Defaults to 'en'.",
		Default:     "en",
	}
	glParam = Param{
		Name:        "gl",
		Type:        "string",
		Description: "Country/region code (optional), e.g. 'US', 'CN'. Defaults to 'US'.",
		Default:     "US",
	}
)

// tools is the fixed registry. Order is the order advertised to clients.
var tools = []ToolDescriptor{
	{
		Name:        ToolSearch,
		Description: "Search YouTube videos. Searches video content by keyword and returns a list of matching videos.",
		Path:        "/search/",
		Params: []Param{
			{Name: "q", Type: "string", Description: "Search keyword, e.g. 'programming tutorial', 'music'.", Required: true},
			hlParam,
			glParam,
		},
	},
	{
		Name:        ToolAutoComplete,
		Description: "YouTube search autocomplete. Returns search suggestions for the given keyword prefix.",
		Path:        "/auto-complete/",
		Params: []Param{
			{Name: "q", Type: "string", Description: "Search keyword prefix, e.g. 'pyth', 'java'.", Required: true},
			hlParam,
			glParam,
		},
	},
	{
		Name:        ToolHome,
		Description: "Get YouTube home page recommendations. Returns the recommended videos on the YouTube home page.",
		Path:        "/home/",
		Params: []Param{
			hlParam,
			glParam,
		},
	},
}

// ListTools returns the tool registry. The returned slice is a copy.
func ListTools() []ToolDescriptor {
	out := make([]ToolDescriptor, len(tools))
	for i, t := range tools {
		out[i] = t
		out[i].Params = append([]Param(nil), t.Params...)
	}
	return out
}

// LookupTool returns the descriptor registered under name.
func LookupTool(name string) (ToolDescriptor, bool) {
	for _, t := range tools {
		if t.Name == name {
			t.Params = append([]Param(nil), t.Params...)
			return t, true
		}
	}
	return ToolDescriptor{}, false
}
