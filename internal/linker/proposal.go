// File path: internal/linker/proposal.go
package linker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sileaweb/content-engine/internal/content"
	"github.com/sileaweb/content-engine/internal/llm"
)

// ErrProposalFormat marks model output that did not contain a well-formed
// list of update tuples. There is no partial application without a valid
// plan, so this aborts the whole linking operation.
var ErrProposalFormat = errors.New("link proposal was not well-formed")

// Entry is one proposed mutation: the entire updated body for one document,
// not a diff.
type Entry struct {
	Ref        content.Ref
	NewContent string
}

// Proposal is the ephemeral output of PlanLinks, consumed immediately by
// ApplyProposal and never persisted as its own entity.
type Proposal struct {
	PillarID string
	Entries  []Entry
}

type wireEntry struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	NewContent string `json:"new_content"`
}

// parseProposal applies the tolerant extraction (fences stripped, first
// bracket to matching closer) and validates every tuple before any of them
// is applied.
func parseProposal(raw string) ([]Entry, error) {
	extracted, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProposalFormat, err)
	}
	var wire []wireEntry
	if err := json.Unmarshal([]byte(extracted), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProposalFormat, err)
	}
	if len(wire) == 0 {
		return nil, fmt.Errorf("%w: empty update list", ErrProposalFormat)
	}
	entries := make([]Entry, 0, len(wire))
	for i, w := range wire {
		docType, err := content.ParseDocType(w.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrProposalFormat, i, err)
		}
		if strings.TrimSpace(w.ID) == "" {
			return nil, fmt.Errorf("%w: entry %d: missing id", ErrProposalFormat, i)
		}
		if strings.TrimSpace(w.NewContent) == "" {
			return nil, fmt.Errorf("%w: entry %d: missing new_content", ErrProposalFormat, i)
		}
		entries = append(entries, Entry{
			Ref:        content.Ref{ID: strings.TrimSpace(w.ID), Type: docType},
			NewContent: w.NewContent,
		})
	}
	return entries, nil
}
