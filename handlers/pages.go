// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/middleware"
	"github.com/danielhkuo/hackathon-showcase/models"
	"github.com/danielhkuo/hackathon-showcase/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const votedCookieMaxAge = 365 * 24 * 60 * 60

// Flash notices carried on the detail page redirect
const (
	NoticeVoted   = "voted"
	NoticeAlready = "already"
	NoticeFailed  = "failed"
)

type notice struct {
	Title       string
	Description string
	Destructive bool
}

var notices = map[string]notice{
	NoticeVoted:   {Title: "投票成功", Description: "感谢您的支持！"},
	NoticeAlready: {Title: "投票提示", Description: "您已经投过票了，每个项目只能投一次哦！", Destructive: true},
	NoticeFailed:  {Title: "投票失败", Description: "请稍后再试", Destructive: true},
}

var templateFuncs = template.FuncMap{
	"comma":  func(n int) string { return humanize.Comma(int64(n)) },
	"themes": models.ThemeDisplayName,
	"theme":  models.ThemeName,
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).
		ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// PagesHandler renders the HTML showcase
type PagesHandler struct {
	store VoteStore
	cfg   cliparse.Config
	pages map[string]*template.Template
}

func NewPagesHandler(s VoteStore, cfg cliparse.Config) *PagesHandler {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home.html", "project.html", "leaderboard.html", "notfound.html"} {
		pages[name] = parsePage(name)
	}
	return &PagesHandler{store: s, cfg: cfg, pages: pages}
}

type projectCard struct {
	models.Project
	Votes int
}

type homeData struct {
	Cards    []projectCard
	Total    int
	NextPage int
	HasMore  bool
}

// Home handles GET /
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	// The pattern "GET /" also catches every unmatched path.
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 1 {
		page = p
	}

	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		slog.Error("failed to list projects for home page", "error", err, "request_id", middleware.RequestID(r.Context()))
		projects = nil
	}
	counts, err := h.store.VoteCounts(r.Context())
	if err != nil {
		slog.Error("failed to load vote counts for home page", "error", err, "request_id", middleware.RequestID(r.Context()))
		counts = map[int64]int{}
	}

	end, hasMore := pageWindow(len(projects), page)
	cards := make([]projectCard, 0, end)
	for _, p := range projects[:end] {
		cards = append(cards, projectCard{Project: p, Votes: counts[p.ID]})
	}

	h.render(w, http.StatusOK, "home.html", homeData{
		Cards:    cards,
		Total:    len(projects),
		NextPage: page + 1,
		HasMore:  hasMore,
	})
}

type projectData struct {
	Project  models.Project
	Votes    int
	HasVoted bool
	Notice   *notice
}

// ProjectDetail handles GET /project/{id}
func (h *PagesHandler) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(r.PathValue("id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	project, err := h.store.GetProject(r.Context(), projectID)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to load project page", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		h.NotFound(w, r)
		return
	}

	data := projectData{
		Project: project,
		Votes:   h.store.VotesOrZero(r.Context(), projectID),
	}
	if n, ok := notices[r.URL.Query().Get("notice")]; ok {
		data.Notice = &n
	}

	remembered := votedProjects(r)
	if slices.Contains(remembered, projectID) {
		data.HasVoted = true
	} else {
		fp := voterFingerprint(r, "", h.cfg.IPSalt)
		voted, err := h.store.CheckIPVoted(r.Context(), projectID, fp)
		if err != nil {
			slog.Warn("vote status check failed, using cookie only", "error", err, "project_id", projectID)
		}
		if voted {
			data.HasVoted = true
			setVotedProjects(w, append(remembered, projectID))
		}
	}

	h.render(w, http.StatusOK, "project.html", data)
}

// CastVoteForm handles POST /project/{id}/vote
func (h *PagesHandler) CastVoteForm(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(r.PathValue("id"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	remembered := votedProjects(r)
	if slices.Contains(remembered, projectID) {
		redirectWithNotice(w, r, projectID, NoticeAlready)
		return
	}

	exists, err := h.store.ProjectExists(r.Context(), projectID)
	if err != nil {
		slog.Error("failed to check project", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		redirectWithNotice(w, r, projectID, NoticeFailed)
		return
	}
	if !exists {
		h.NotFound(w, r)
		return
	}

	fp := voterFingerprint(r, "", h.cfg.IPSalt)
	votes, err := h.store.IncrementVoteWithIP(r.Context(), projectID, fp)
	switch {
	case err == nil:
		slog.Info("page vote recorded", "project_id", projectID, "votes", votes)
		setVotedProjects(w, append(remembered, projectID))
		redirectWithNotice(w, r, projectID, NoticeVoted)
	case errors.Is(err, store.ErrAlreadyVoted):
		setVotedProjects(w, append(remembered, projectID))
		redirectWithNotice(w, r, projectID, NoticeAlready)
	default:
		slog.Error("page vote failed", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		redirectWithNotice(w, r, projectID, NoticeFailed)
	}
}

type leaderboardRow struct {
	Rank     int
	Medal    string
	Votes    int
	Title    string
	TeamName string
	Theme    []int
}

// leaderboardData is the ranking plus the stats card above it
type leaderboardData struct {
	Rows       []leaderboardRow
	Projects   int
	TotalVotes int
	TopVotes   int
}

var medals = []string{"gold", "silver", "bronze"}

// Leaderboard handles GET /leaderboard
func (h *PagesHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.store.GetVoteRankings(r.Context())
	if err != nil {
		slog.Error("failed to load leaderboard page", "error", err, "request_id", middleware.RequestID(r.Context()))
		rankings = nil
	}

	data := leaderboardData{
		Rows:     make([]leaderboardRow, 0, len(rankings)),
		Projects: len(rankings),
	}
	for i, rk := range rankings {
		row := leaderboardRow{Rank: i + 1, Votes: rk.Votes, TeamName: "未知团队"}
		if i < len(medals) {
			row.Medal = medals[i]
		}
		if rk.Project != nil {
			row.Title = rk.Project.Title
			row.TeamName = rk.Project.TeamName
			row.Theme = rk.Project.Theme
		} else {
			row.Title = fmt.Sprintf("项目 %d", rk.ProjectID)
		}
		data.Rows = append(data.Rows, row)
		data.TotalVotes += rk.Votes
	}
	// Rankings are sorted, so the first row holds the highest count
	if len(rankings) > 0 {
		data.TopVotes = rankings[0].Votes
	}

	h.render(w, http.StatusOK, "leaderboard.html", data)
}

// NotFound renders the 404 page
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "notfound.html", r.URL.Path)
}

func (h *PagesHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render page", "error", err, "page", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, projectID int64, n string) {
	http.Redirect(w, r, fmt.Sprintf("/project/%d?notice=%s", projectID, n), http.StatusSeeOther)
}

// votedProjects reads the voted_projects cookie; malformed entries are skipped
func votedProjects(r *http.Request) []int64 {
	c, err := r.Cookie(models.VotedProjectsKey)
	if err != nil {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(c.Value, ".") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func setVotedProjects(w http.ResponseWriter, ids []int64) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     models.VotedProjectsKey,
		Value:    strings.Join(parts, "."),
		Path:     "/",
		MaxAge:   votedCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
