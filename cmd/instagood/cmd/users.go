package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	instagood "github.com/reidark/go-instagood"
	"github.com/spf13/cobra"
)

var (
	pageSize  int
	postCount int
	after     string
)

func init() {
	followersCmd.Flags().IntVarP(&pageSize, "count", "n", 24, "page size")
	followersCmd.Flags().StringVar(&after, "after", "", "end cursor of the previous page")
	followingCmd.Flags().IntVarP(&pageSize, "count", "n", 24, "page size")
	followingCmd.Flags().StringVar(&after, "after", "", "end cursor of the previous page")
	postsCmd.Flags().IntVarP(&postCount, "count", "n", 12, "number of posts")
	postsCmd.Flags().StringVar(&after, "after", "", "end cursor of the previous page")

	rootCmd.AddCommand(infoCmd, followersCmd, followingCmd, postsCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [username]",
	Short: "Prints the profile of username, or of the configured account.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		u, err := client.FetchUserInfo(cmd.Context(), name)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"ID", u.PK},
			{"Username", u.Username},
			{"Full name", u.FullName},
			{"Private", yesNo(u.IsPrivate)},
			{"Verified", yesNo(u.IsVerified)},
			{"Followers", u.FollowerCount},
		})
		t.Render()
		return nil
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers <user>",
	Short: "Lists one page of the followers of user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFriendships(cmd, instagood.Followers, args[0])
	},
}

var followingCmd = &cobra.Command{
	Use:   "following <user>",
	Short: "Lists one page of the accounts user follows.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFriendships(cmd, instagood.Following, args[0])
	},
}

func printFriendships(cmd *cobra.Command, direction instagood.Direction, user string) error {
	page, err := client.FetchFriendships(cmd.Context(), direction, user, pageSize, after)
	if err != nil {
		return err
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "Username", "Full name", "Private", "Verified"})
	for _, e := range page.Edges {
		t.AppendRow(table.Row{e.ID, e.Username, e.FullName, yesNo(e.IsPrivate), yesNo(e.IsVerified)})
	}
	t.AppendFooter(table.Row{"Total", page.Count, "", "Next", cursorOf(page.PageInfo.EndCursor)})
	t.Render()
	return nil
}

var postsCmd = &cobra.Command{
	Use:   "posts <user>",
	Short: "Lists timeline posts of user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			page *instagood.Posts
			err  error
		)
		if cmd.Flags().Changed("after") {
			page, err = client.FetchUserPostsAfter(cmd.Context(), args[0], postCount, after)
		} else {
			page, err = client.FetchUserPosts(cmd.Context(), args[0], postCount)
		}
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Shortcode", "Taken", "Likes", "Comments", "Caption"})
		for _, p := range page.Edges {
			taken := ""
			if !p.TakenAt.IsZero() {
				taken = p.TakenAt.Format("2006-01-02")
			}
			t.AppendRow(table.Row{p.ID, p.Shortcode, taken, p.LikeCount, p.CommentCount, oneLine(p.Caption, 40)})
		}
		t.AppendFooter(table.Row{"Total", page.Count, "", "", "Next", cursorOf(page.PageInfo.EndCursor)})
		t.Render()
		return nil
	},
}
