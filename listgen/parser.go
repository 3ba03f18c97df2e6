// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listgen

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/grocerypick/ai"
	"github.com/poiesic/grocerypick/core"
)

// Parse converts raw model output into a structured list. The first
// non-empty line is the title, every following line is expected to be
// "name,quantity,unit". Malformed lines are skipped, not fatal; a list
// with no valid items is.
func Parse(raw string, logger *slog.Logger) (*core.StructuredList, error) {
	if logger == nil {
		logger = slog.Default().With("component", "listgen")
	}

	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty output", core.ErrParseFailure)
	}
	if cleaned == ai.RejectSentinel {
		return nil, fmt.Errorf("%w: request rejected by model", core.ErrParseFailure)
	}

	lines := strings.Split(cleaned, "\n")
	title := ""
	rest := lines
	for i, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			title = trimmed
			rest = lines[i+1:]
			break
		}
	}

	items := make([]core.GroceryItem, 0, len(rest))
	for _, line := range rest {
		item, ok := parseItemLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				logger.Warn("skipping malformed item line", "line", line)
			}
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no valid grocery items in output", core.ErrParseFailure)
	}

	return &core.StructuredList{
		Title:    title,
		Metadata: timestampMetadata(time.Now()),
		Items:    items,
	}, nil
}

// parseItemLine parses a single "name,quantity,unit" line. Any deviation
// from the three-field shape or a non-positive quantity fails the line.
func parseItemLine(line string) (core.GroceryItem, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return core.GroceryItem{}, false
	}

	name := strings.TrimSpace(parts[0])
	unit := strings.TrimSpace(parts[2])
	quantity, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return core.GroceryItem{}, false
	}
	if name == "" || unit == "" || quantity <= 0 || math.IsInf(quantity, 0) || math.IsNaN(quantity) {
		return core.GroceryItem{}, false
	}

	return core.GroceryItem{Name: name, Quantity: quantity, Unit: unit}, true
}

// FormatItems renders items back into the line format the model was asked
// to produce, for feeding an existing list into a refinement prompt.
func FormatItems(items []core.GroceryItem) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(item.Name)
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(item.Quantity, 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(item.Unit)
	}
	return sb.String()
}

func timestampMetadata(t time.Time) string {
	return t.Format("15:04:05 2/1/2006")
}
