package exercise

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Exercise is one practice item from the admin-curated workbook. TextContent
// is the target text used for content-accuracy scoring.
type Exercise struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	TargetEmotion string `json:"target_emotion,omitempty"`
	TextContent   string `json:"text_content"`
}

// Load reads the exercise workbook, detecting columns by header heuristics so
// admins can reorder or rename them loosely. Rows without an id or text are
// skipped quietly.
func Load(path string) ([]Exercise, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	idIdx, titleIdx, descIdx, catIdx, diffIdx, emoIdx, textIdx := -1, -1, -1, -1, -1, -1, -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case textIdx == -1 && (strings.Contains(l, "text") || strings.Contains(l, "content") || strings.Contains(l, "passage")):
			textIdx = i
		case emoIdx == -1 && strings.Contains(l, "emotion"):
			emoIdx = i
		case diffIdx == -1 && (strings.Contains(l, "difficulty") || strings.Contains(l, "level")):
			diffIdx = i
		case catIdx == -1 && strings.Contains(l, "categ"):
			catIdx = i
		case descIdx == -1 && strings.Contains(l, "desc"):
			descIdx = i
		case titleIdx == -1 && (strings.Contains(l, "title") || strings.Contains(l, "name")):
			titleIdx = i
		case idIdx == -1 && strings.Contains(l, "id"):
			idIdx = i
		}
	}
	if textIdx == -1 && len(rows[0]) > 2 {
		// common layout: id, title, text
		textIdx = 2
	}

	cell := func(r []string, idx int) string {
		if idx >= 0 && idx < len(r) {
			return strings.TrimSpace(r[idx])
		}
		return ""
	}

	var out []Exercise
	for i, r := range rows {
		if i == 0 {
			continue
		}
		ex := Exercise{
			ID:            cell(r, idIdx),
			Title:         cell(r, titleIdx),
			Description:   cell(r, descIdx),
			Category:      cell(r, catIdx),
			Difficulty:    cell(r, diffIdx),
			TargetEmotion: cell(r, emoIdx),
			TextContent:   cell(r, textIdx),
		}
		if ex.ID == "" || ex.TextContent == "" {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

// Catalog indexes exercises by id.
type Catalog struct {
	items map[string]Exercise
	order []Exercise
}

func NewCatalog(items []Exercise) *Catalog {
	c := &Catalog{items: make(map[string]Exercise, len(items)), order: items}
	for _, ex := range items {
		c.items[ex.ID] = ex
	}
	return c
}

func (c *Catalog) Get(id string) (Exercise, bool) {
	ex, ok := c.items[id]
	return ex, ok
}

func (c *Catalog) List() []Exercise { return c.order }
