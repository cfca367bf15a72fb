// File: internal/services/chat/context.go
package chat

import (
    "context"
    "fmt"
    "strings"

    "github.com/wellpath/health-advisor/internal/repository/record"
)

// ContextAssembler renders a user's clinical records into the grounding
// block injected ahead of the AI conversation. Every record contributes
// in full, in store-return order; there is no token budget, so prompt
// size grows with the user's record count. Known scaling limit.
type ContextAssembler struct {
    records record.RecordRepository
}

func NewContextAssembler(records record.RecordRepository) *ContextAssembler {
    return &ContextAssembler{records: records}
}

// BuildContext returns the rendered block, or the empty string when the
// user has no records. Callers must omit the grounding section entirely
// on empty rather than injecting an empty header.
func (a *ContextAssembler) BuildContext(ctx context.Context, userID uint) (string, error) {
    records, err := a.records.FindByUserID(ctx, userID)
    if err != nil {
        return "", NewStorageError("build_context", "could not load user records", err)
    }

    if len(records) == 0 {
        return "", nil
    }

    var b strings.Builder
    b.WriteString("以下是用户的病历资料:\n")
    for i, r := range records {
        b.WriteString(fmt.Sprintf("病历 %d (%s) - %s:\n", i+1, r.RecordType, r.UploadDate.Format("2006-01-02")))
        if r.Description != "" {
            b.WriteString(fmt.Sprintf("描述: %s\n", r.Description))
        }
        b.WriteString(r.TextContent)
        b.WriteString("\n\n")
    }

    return b.String(), nil
}
