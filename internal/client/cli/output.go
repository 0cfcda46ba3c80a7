package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/common"
	pb "github.com/dmitrijs2005/filemeta/internal/proto"
)

type quotaView struct {
	OwnerID   string `json:"owner_id"`
	Limit     uint64 `json:"limit"`
	Used      uint64 `json:"used"`
	Available uint64 `json:"available"`
}

type fileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Size        uint64 `json:"size"`
	OwnerID     string `json:"owner_id"`
	Parent      string `json:"parent,omitempty"`
	Key         string `json:"key,omitempty"`
	Bucket      string `json:"bucket,omitempty"`
	TargetID    string `json:"target_id,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func toFileView(f *pb.File) fileView {
	return fileView{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Size:        f.Size,
		OwnerID:     f.OwnerID,
		Parent:      f.ParentID(),
		Key:         f.Key,
		Bucket:      f.Bucket,
		TargetID:    f.TargetID,
		Description: f.Description,
		CreatedAt:   formatMillis(f.CreatedAt),
		UpdatedAt:   formatMillis(f.UpdatedAt),
	}
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) printQuota(q *pb.GetOwnerQuotaResponse) error {
	v := quotaView{OwnerID: q.OwnerID, Limit: q.Limit, Used: q.Used}
	if q.Used < q.Limit {
		v.Available = q.Limit - q.Used
	}
	if !a.table {
		return a.printJSON(v)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OWNER\tLIMIT\tUSED\tAVAILABLE")
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", v.OwnerID, v.Limit, v.Used, v.Available)
	return w.Flush()
}

func (a *App) printFiles(files []*pb.File) error {
	views := make([]fileView, 0, len(files))
	for _, f := range files {
		views = append(views, toFileView(f))
	}
	if !a.table {
		return a.printJSON(views)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE")
	for _, v := range views {
		name := v.Name
		if v.Type == common.FolderType {
			name += "/"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", v.ID, name, v.Type, v.Size)
	}
	return w.Flush()
}

func (a *App) printFile(f *pb.File) error {
	v := toFileView(f)
	if !a.table {
		return a.printJSON(v)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"id", v.ID},
		{"name", v.Name},
		{"type", v.Type},
		{"size", fmt.Sprint(v.Size)},
		{"owner", v.OwnerID},
		{"parent", v.Parent},
		{"key", v.Key},
		{"bucket", v.Bucket},
		{"target", v.TargetID},
		{"description", v.Description},
		{"created", v.CreatedAt},
		{"updated", v.UpdatedAt},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
	return w.Flush()
}
