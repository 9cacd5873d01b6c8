package reader

import (
	"fmt"

	"github.com/pithecene-io/clipfrag/journal"
)

// Journal shapes records read from path. truncated marks a journal whose
// final frame was cut short.
func Journal(path string, records []journal.Record, truncated bool) *JournalResponse {
	resp := &JournalResponse{
		Path:      path,
		Truncated: truncated,
		Records:   make([]JournalItem, 0, len(records)),
	}

	sessions := make(map[string]struct{})
	for _, r := range records {
		sessions[r.SessionID] = struct{}{}

		item := JournalItem{
			Seq:     r.Seq,
			Time:    r.Time,
			Session: short(r.SessionID, 8),
			Type:    string(r.Type),
			Units:   r.Units,
			Length:  r.Length,
			Digest:  short(r.Digest, 12),
		}
		switch r.Type {
		case journal.TypeDeliver:
			item.Lines = fmt.Sprintf("%d-%d", r.Start+1, r.Next)
		case journal.TypeSessionStart:
			item.Detail = r.Source
		case journal.TypeSessionEnd:
			item.Detail = r.Reason
		}
		resp.Records = append(resp.Records, item)
	}
	resp.Sessions = len(sessions)
	return resp
}

func short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
