package instagood

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the web host every endpoint lives under.
const DefaultBaseURL = "https://www.instagram.com"

// Endpoint paths, relative to the base URL.
const (
	pathTopSearch      = "/web/search/topsearch/"
	pathGraphQL        = "/graphql/query/"
	pathFriendships    = "/web/friendships/%s/%s/"
	pathLikes          = "/web/media/%s/%s/"
	pathComment        = "/web/media/%s/add/"
	pathLogin          = "/accounts/login/ajax/"
	pathLoginTwoFactor = "/accounts/login/ajax/two_factor/"
	pathLogout         = "/accounts/logout/ajax/"
	pathRoot           = "/"
)

// GraphQL query hashes for the edge and timeline queries.
const (
	queryHashFollowers     = "c76146de99bb02f6415203be841dd25a"
	queryHashFollowing     = "d04b0a864b4b54837c0d870b0e77e076"
	queryHashTimelineMedia = "e769aa130647d2354c40ea6a439bfc08"
)

// defaultPostsCursor is the fixed cursor FetchUserPosts sends. It does not
// depend on the subject, so every call asks for the same page offset.
const defaultPostsCursor = "QVFCd2pVQ2hxbkJ5Q3ZrNVNPNG5wZHdSZk5zMk5fT3RzVmNtWGU2Z3pJNmpkc2VqZGE5Q2lXZUZ2T2g1WDFUQk5Td1FvWFJpTGl1bzhCTzBXOVJQQWN4Wg=="

// endpoints resolves paths against a configured base URL.
type endpoints struct {
	base string
}

func newEndpoints(base string) endpoints {
	return endpoints{base: strings.TrimRight(base, "/")}
}

func (e endpoints) root() string {
	return e.base + pathRoot
}

func (e endpoints) topSearch(query string) string {
	return e.base + pathTopSearch + "?context=user&count=0&query=" + url.QueryEscape(query)
}

func (e endpoints) friendships(id string, action FriendshipAction) string {
	return e.base + fmt.Sprintf(pathFriendships, url.PathEscape(id), action)
}

func (e endpoints) likes(mediaID string, action LikeAction) string {
	return e.base + fmt.Sprintf(pathLikes, url.PathEscape(mediaID), action)
}

func (e endpoints) comment(mediaID string) string {
	return e.base + fmt.Sprintf(pathComment, url.PathEscape(mediaID))
}

func (e endpoints) login() string          { return e.base + pathLogin }
func (e endpoints) loginTwoFactor() string { return e.base + pathLoginTwoFactor }
func (e endpoints) logout() string         { return e.base + pathLogout }

// graphQL builds a query URL with variables JSON-encoded and then
// percent-encoded into the query string.
func (e endpoints) graphQL(queryHash string, variables map[string]any) (string, error) {
	b, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("encode variables: %w", err)
	}
	return e.base + pathGraphQL + "?query_hash=" + queryHash + "&variables=" + url.QueryEscape(string(b)), nil
}
