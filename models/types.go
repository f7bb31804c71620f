package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PageSize is the number of project cards per listing page
const PageSize = 9

// DefaultThumbnail is used when a project has no thumbnail
const DefaultThumbnail = "/placeholder.svg"

// VotedProjectsKey names the client-local set of voted project IDs
const VotedProjectsKey = "voted_projects"

// Theme tags
const (
	ThemeCyberAI   = 1
	ThemeSociety   = 2
	ThemeTechLife  = 3
	MaxThemeCount  = 3
	unknownTheme   = "未知主题"
	themeFallbackF = "主题%d"
)

var themeNames = map[int]string{
	ThemeCyberAI:  "赛博 AI 20X5",
	ThemeSociety:  "重新发现社会",
	ThemeTechLife: "科技改变生活",
}

// ThemeName returns the display name for one theme tag
func ThemeName(tag int) string {
	if name, ok := themeNames[tag]; ok {
		return name
	}
	return fmt.Sprintf(themeFallbackF, tag)
}

// ThemeDisplayName joins the names of all tags with ", "
func ThemeDisplayName(tags []int) string {
	if len(tags) == 0 {
		return unknownTheme
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = ThemeName(t)
	}
	return strings.Join(names, ", ")
}

// ProjectRef is a project ID that decodes from a JSON number or a numeric string
type ProjectRef int64

var ErrInvalidProjectRef = errors.New("projectId must be an integer")

func (p *ProjectRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
		if len(b) == 0 {
			*p = 0
			return nil
		}
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return ErrInvalidProjectRef
	}
	*p = ProjectRef(id)
	return nil
}

// ParseProjectID parses a project ID from a path or query value
func ParseProjectID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidProjectRef
	}
	return id, nil
}

// Request types

type CastVoteRequest struct {
	ProjectID ProjectRef `json:"projectId"`
}

type CastIPVoteRequest struct {
	ProjectID ProjectRef `json:"projectId"`
	IP        string     `json:"ip,omitempty"`
}

// Response types

type VotesResponse struct {
	Votes int `json:"votes"`
}

type CastVoteResponse struct {
	Success bool `json:"success"`
	Votes   int  `json:"votes"`
}

type VoteStatusResponse struct {
	Votes int  `json:"votes"`
	Voted bool `json:"voted"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"has_more"`
}

type AdminVoteResponse struct {
	ProjectID  int64 `json:"project_id"`
	Votes      int   `json:"votes"`
	VoterCount int   `json:"voter_count"`
}

// Domain types

type Member struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	School string `json:"school,omitempty"`
}

type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Theme       []int    `json:"theme"`
	TeamName    string   `json:"teamName"`
	Members     []Member `json:"members"`
	Thumbnail   string   `json:"thumbnail"`
	DemoURL     string   `json:"demoUrl,omitempty"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	VideoURL    string   `json:"videoUrl,omitempty"`
}

// ThemeDisplayName is used by the page templates
func (p Project) ThemeDisplayName() string {
	return ThemeDisplayName(p.Theme)
}

// VoteRecord is the per-project counter plus the fingerprints of IPs that voted
type VoteRecord struct {
	ProjectID int64    `json:"project_id"`
	Votes     int      `json:"votes"`
	VoterIPs  []string `json:"-"` // Never expose in JSON
}

// RankedProject is the minimal project shape joined into the leaderboard
type RankedProject struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	TeamName string `json:"teamName"`
	Theme    []int  `json:"theme"`
}

type VoteRanking struct {
	ProjectID int64          `json:"project_id"`
	Votes     int            `json:"votes"`
	Project   *RankedProject `json:"project"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
