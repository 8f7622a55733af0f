package instagood

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// flexString accepts a JSON string or number. The platform has served user
// and media ids in both forms.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// --- user search ---

type searchUser struct {
	PK            flexString `json:"pk"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	ProfilePicURL string     `json:"profile_pic_url"`
	IsPrivate     bool       `json:"is_private"`
	IsVerified    bool       `json:"is_verified"`
	FollowerCount int        `json:"follower_count"`
}

// parseTopSearch extracts the first matching user. It returns nil without
// error when the result set is empty.
func parseTopSearch(op string, resp *Response) (*User, error) {
	var raw struct {
		Status string `json:"status"`
		Users  []struct {
			Position int        `json:"position"`
			User     searchUser `json:"user"`
		} `json:"users"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return nil, err
	}
	if len(raw.Users) == 0 {
		return nil, nil
	}
	u := raw.Users[0].User
	if u.PK == "" {
		return nil, &Error{Kind: KindMalformedResponse, Op: op, Status: resp.Status, Err: fmt.Errorf("user without pk")}
	}
	return &User{
		Status:        StatusOK,
		PK:            string(u.PK),
		Username:      u.Username,
		FullName:      u.FullName,
		ProfilePicURL: u.ProfilePicURL,
		IsPrivate:     u.IsPrivate,
		IsVerified:    u.IsVerified,
		FollowerCount: u.FollowerCount,
	}, nil
}

// --- edge lists ---

type pageInfo struct {
	HasNextPage bool    `json:"has_next_page"`
	EndCursor   *string `json:"end_cursor"`
}

type userEdges struct {
	Count    int      `json:"count"`
	PageInfo pageInfo `json:"page_info"`
	Edges    []struct {
		Node struct {
			ID                flexString `json:"id"`
			Username          string     `json:"username"`
			FullName          string     `json:"full_name"`
			ProfilePicURL     string     `json:"profile_pic_url"`
			IsPrivate         bool       `json:"is_private"`
			IsVerified        bool       `json:"is_verified"`
			FollowedByViewer  bool       `json:"followed_by_viewer"`
			RequestedByViewer bool       `json:"requested_by_viewer"`
		} `json:"node"`
	} `json:"edges"`
}

// parseFriendships parses a followers or following page.
func parseFriendships(op string, resp *Response, direction Direction, userID string) (*Friendships, error) {
	var raw struct {
		Data struct {
			User *struct {
				EdgeFollowedBy *userEdges `json:"edge_followed_by"`
				EdgeFollow     *userEdges `json:"edge_follow"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return nil, err
	}
	if raw.Data.User == nil {
		return nil, classifyResponse(op, resp.Status, resp.Body)
	}

	edges := raw.Data.User.EdgeFollowedBy
	if direction == Following {
		edges = raw.Data.User.EdgeFollow
	}
	if edges == nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: op, Status: resp.Status, Err: fmt.Errorf("missing %s edge list", direction.edgeName())}
	}

	out := &Friendships{
		Status:    StatusOK,
		Direction: direction,
		UserID:    userID,
		Count:     edges.Count,
		PageInfo:  PageInfo(edges.PageInfo),
		Edges:     make([]EdgeUser, 0, len(edges.Edges)),
	}
	for _, e := range edges.Edges {
		n := e.Node
		out.Edges = append(out.Edges, EdgeUser{
			ID:                string(n.ID),
			Username:          n.Username,
			FullName:          n.FullName,
			ProfilePicURL:     n.ProfilePicURL,
			IsPrivate:         n.IsPrivate,
			IsVerified:        n.IsVerified,
			FollowedByViewer:  n.FollowedByViewer,
			RequestedByViewer: n.RequestedByViewer,
		})
	}
	return out, nil
}

// parseTimelineMedia parses a page of edge_owner_to_timeline_media.
func parseTimelineMedia(op string, resp *Response, userID string) (*Posts, error) {
	var raw struct {
		Data struct {
			User *struct {
				Media *struct {
					Count    int      `json:"count"`
					PageInfo pageInfo `json:"page_info"`
					Edges    []struct {
						Node struct {
							ID         flexString `json:"id"`
							Shortcode  string     `json:"shortcode"`
							DisplayURL string     `json:"display_url"`
							IsVideo    bool       `json:"is_video"`
							TakenAt    int64      `json:"taken_at_timestamp"`
							Caption    struct {
								Edges []struct {
									Node struct {
										Text string `json:"text"`
									} `json:"node"`
								} `json:"edges"`
							} `json:"edge_media_to_caption"`
							Likes struct {
								Count int `json:"count"`
							} `json:"edge_media_preview_like"`
							Comments struct {
								Count int `json:"count"`
							} `json:"edge_media_to_comment"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"edge_owner_to_timeline_media"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return nil, err
	}
	if raw.Data.User == nil {
		return nil, classifyResponse(op, resp.Status, resp.Body)
	}
	media := raw.Data.User.Media
	if media == nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: op, Status: resp.Status, Err: fmt.Errorf("missing edge_owner_to_timeline_media")}
	}

	out := &Posts{
		Status:   StatusOK,
		UserID:   userID,
		Count:    media.Count,
		PageInfo: PageInfo(media.PageInfo),
		Edges:    make([]Post, 0, len(media.Edges)),
	}
	for _, e := range media.Edges {
		n := e.Node
		p := Post{
			ID:           string(n.ID),
			Shortcode:    n.Shortcode,
			DisplayURL:   n.DisplayURL,
			IsVideo:      n.IsVideo,
			LikeCount:    n.Likes.Count,
			CommentCount: n.Comments.Count,
		}
		if len(n.Caption.Edges) > 0 {
			p.Caption = n.Caption.Edges[0].Node.Text
		}
		if n.TakenAt > 0 {
			p.TakenAt = time.Unix(n.TakenAt, 0).UTC()
		}
		out.Edges = append(out.Edges, p)
	}
	return out, nil
}

// --- mutations ---

func parseFriendshipAction(op string, resp *Response, id string, action FriendshipAction) (*FriendshipResult, error) {
	var raw struct {
		Status string `json:"status"`
		Result string `json:"result"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return nil, err
	}
	return &FriendshipResult{Status: StatusOK, ID: id, Action: action, Result: raw.Result}, nil
}

func parseLikeAction(op string, resp *Response, mediaID string, action LikeAction) (*LikeResult, error) {
	var raw struct {
		Status string `json:"status"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return nil, err
	}
	return &LikeResult{Status: StatusOK, MediaID: mediaID, Action: action}, nil
}

func parseComment(op string, resp *Response, mediaID string) (*Comment, error) {
	var raw struct {
		Status      string     `json:"status"`
		ID          flexString `json:"id"`
		Text        string     `json:"text"`
		CreatedTime int64      `json:"created_time"`
		From        struct {
			ID       flexString `json:"id"`
			Username string     `json:"username"`
		} `json:"from"`
	}
	if err := decodeOK(op, resp, &raw); err != nil {
		return nil, err
	}
	c := &Comment{
		Status:       StatusOK,
		ID:           string(raw.ID),
		MediaID:      mediaID,
		Text:         raw.Text,
		FromID:       string(raw.From.ID),
		FromUsername: raw.From.Username,
	}
	if raw.CreatedTime > 0 {
		c.CreatedAt = time.Unix(raw.CreatedTime, 0).UTC()
	}
	return c, nil
}

// --- login ---

type loginResponse struct {
	Status          string     `json:"status"`
	Message         string     `json:"message"`
	Authenticated   bool       `json:"authenticated"`
	User            bool       `json:"user"`
	UserID          flexString `json:"userId"`
	TwoFactorNeeded bool       `json:"two_factor_required"`
	TwoFactorInfo   struct {
		Identifier string `json:"two_factor_identifier"`
		Username   string `json:"username"`
	} `json:"two_factor_info"`
}

func parseLogin(op string, resp *Response) (*loginResponse, error) {
	var raw loginResponse
	if err := decodeJSON(op, resp, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
