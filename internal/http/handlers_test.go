package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	httpapi "github.com/tazhibayda/community-service/internal/http"
	"github.com/tazhibayda/community-service/internal/service"
	"github.com/tazhibayda/community-service/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	groups := testutil.NewMemGroupRepo()
	discussions := testutil.NewMemDiscussionRepo()

	gsvc := service.NewGroupService(groups, discussions)
	dsvc := service.NewDiscussionService(discussions, groups)
	isvc := service.NewInteractionService(discussions)

	h := httpapi.NewHandler(gsvc, dsvc, isvc, nil, nil, 1000)
	return httpapi.NewRouter(h)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func Test_Group_Create_Join_Leave(t *testing.T) {
	r := newTestRouter(t)

	// 1) CREATE
	w := do(t, r, "POST", "/api/groups/createGroup",
		`{"name":"Weekend Bikers","description":"Rides every Saturday","category":"Sports",
		  "creator":{"id":"u1","email":"alice@example.com","name":"Alice"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create code=%d body=%s", w.Code, w.Body.String())
	}
	var g struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &g); err != nil || g.ID == "" {
		t.Fatalf("create resp parse: %v; body=%s", err, w.Body.String())
	}
	if g.Slug != "weekend-bikers" {
		t.Fatalf("slug=%q", g.Slug)
	}

	// duplicate name -> 400
	w = do(t, r, "POST", "/api/groups/createGroup",
		`{"name":"Weekend Bikers","description":"dup","category":"Sports",
		  "creator":{"id":"u1","email":"alice@example.com","name":"Alice"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("dup create expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// 2) JOIN
	w = do(t, r, "POST", "/api/groups/join/"+g.ID,
		`{"id":"u2","email":"bob@example.com","name":"Bob"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("join code=%d body=%s", w.Code, w.Body.String())
	}

	// join twice -> 400
	w = do(t, r, "POST", "/api/groups/join/"+g.ID,
		`{"id":"u2","email":"bob@example.com","name":"Bob"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("rejoin expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// 3) MEMBERSHIP
	w = do(t, r, "POST", "/api/groups/members/"+g.ID, `{"email":"bob@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("members code=%d body=%s", w.Code, w.Body.String())
	}
	var mr struct {
		IsMember bool `json:"is_member"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &mr)
	if !mr.IsMember {
		t.Fatalf("expected member, body=%s", w.Body.String())
	}

	// 4) creator cannot leave -> 400
	w = do(t, r, "POST", "/api/groups/leave/"+g.ID, `{"email":"alice@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("creator leave expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// 5) member leaves
	w = do(t, r, "POST", "/api/groups/leave/"+g.ID, `{"email":"bob@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("leave code=%d body=%s", w.Code, w.Body.String())
	}

	// 6) group detail by slug carries member_count
	w = do(t, r, "GET", "/api/groups/getGroupBySlug/weekend-bikers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("bySlug code=%d body=%s", w.Code, w.Body.String())
	}
	var detail struct {
		MemberCount int `json:"member_count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &detail)
	if detail.MemberCount != 1 {
		t.Fatalf("member_count=%d body=%s", detail.MemberCount, w.Body.String())
	}
}

func Test_Discussion_Flow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, "POST", "/api/groups/createGroup",
		`{"name":"Gophers","description":"Go talk","category":"Technology",
		  "creator":{"id":"u1","email":"alice@example.com","name":"Alice"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("group create: %d %s", w.Code, w.Body.String())
	}
	var g struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &g)

	// create two discussions with the same title -> suffixed slug
	mk := func() map[string]json.RawMessage {
		w := do(t, r, "POST", "/api/discussions/createDiscussion",
			`{"title":"Hello World","content":"post","category":"Technology",
			  "group_id":"`+g.ID+`","id":"u2","email":"bob@example.com","username":"Bob"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("discussion create: %d %s", w.Code, w.Body.String())
		}
		var resp map[string]json.RawMessage
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return resp
	}
	first := mk()
	second := mk()

	var d1, d2 struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	_ = json.Unmarshal(first["discussion"], &d1)
	_ = json.Unmarshal(second["discussion"], &d2)
	if d1.Slug != "hello-world" || d2.Slug != "hello-world-1" {
		t.Fatalf("slugs=%q,%q", d1.Slug, d2.Slug)
	}

	// like toggle round-trip
	w = do(t, r, "POST", "/api/discussions/likeDiscussion",
		`{"discussion_id":"`+d1.ID+`","email":"carol@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("like: %d %s", w.Code, w.Body.String())
	}
	var lr struct {
		Message string   `json:"message"`
		Likes   []string `json:"likes"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &lr)
	if lr.Message != "Liked" || len(lr.Likes) != 1 {
		t.Fatalf("like resp: %s", w.Body.String())
	}

	w = do(t, r, "POST", "/api/discussions/likeDiscussion",
		`{"discussion_id":"`+d1.ID+`","email":"carol@example.com"}`)
	_ = json.Unmarshal(w.Body.Bytes(), &lr)
	if lr.Message != "Unliked" || len(lr.Likes) != 0 {
		t.Fatalf("unlike resp: %s", w.Body.String())
	}

	// discussions of the group, newest first
	w = do(t, r, "GET", "/api/groups/getDiscussionsByGroup/"+g.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("byGroup: %d %s", w.Code, w.Body.String())
	}
	var views []struct {
		Slug  string           `json:"slug"`
		Group *json.RawMessage `json:"group"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &views)
	if len(views) != 2 || views[0].Group == nil {
		t.Fatalf("byGroup resp: %s", w.Body.String())
	}

	// malformed group id -> 400
	w = do(t, r, "GET", "/api/groups/getDiscussionsByGroup/nope", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id expected 400, got %d", w.Code)
	}

	// delete cascades when the group goes
	w = do(t, r, "DELETE", "/api/groups/deleteGroup/"+g.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("group delete: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, "GET", "/api/discussions/getDiscussionBySlug/hello-world", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("cascade expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func Test_Comment_Flow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, "POST", "/api/groups/createGroup",
		`{"name":"Gophers","description":"Go talk","category":"Technology",
		  "creator":{"id":"u1","email":"alice@example.com","name":"Alice"}}`)
	var g struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &g)

	w = do(t, r, "POST", "/api/discussions/createDiscussion",
		`{"title":"Comment here","content":"post","category":"Technology",
		  "group_id":"`+g.ID+`","id":"u2","email":"bob@example.com","username":"Bob"}`)
	var created struct {
		Discussion struct {
			ID string `json:"id"`
		} `json:"discussion"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	did := created.Discussion.ID

	// create
	w = do(t, r, "POST", "/api/comments/create/"+did,
		`{"content":"first!","id":"u3","email":"carol@example.com","username":"Carol"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("comment create: %d %s", w.Code, w.Body.String())
	}
	var cr struct {
		Comment struct {
			ID string `json:"id"`
		} `json:"comment"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &cr)
	cid := cr.Comment.ID
	if cid == "" {
		t.Fatalf("no comment id: %s", w.Body.String())
	}

	// edit
	w = do(t, r, "PUT", "/api/comments/edit/"+did+"/"+cid, `{"content":"edited"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("comment edit: %d %s", w.Code, w.Body.String())
	}

	// like toggle
	w = do(t, r, "POST", "/api/comments/like/"+did+"/"+cid, `{"email":"bob@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("comment like: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, "GET", "/api/comments/likes/"+did+"/"+cid, "")
	var cl struct {
		LikeCount int `json:"like_count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &cl)
	if cl.LikeCount != 1 {
		t.Fatalf("like_count=%d body=%s", cl.LikeCount, w.Body.String())
	}

	// delete by a stranger -> 403
	w = do(t, r, "DELETE", "/api/comments/delete/"+did+"/"+cid, `{"email":"mallory@example.com"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger delete expected 403, got %d: %s", w.Code, w.Body.String())
	}

	// delete by the author
	w = do(t, r, "DELETE", "/api/comments/delete/"+did+"/"+cid, `{"email":"carol@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("author delete: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, "GET", "/api/comments/list/"+did, "")
	var list struct {
		CommentCount int `json:"comment_count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list.CommentCount != 0 {
		t.Fatalf("comment_count=%d body=%s", list.CommentCount, w.Body.String())
	}
}

func Test_Healthz(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz: %d %s", w.Code, w.Body.String())
	}
}
