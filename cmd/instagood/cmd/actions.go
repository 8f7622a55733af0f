package cmd

import (
	"fmt"

	instagood "github.com/reidark/go-instagood"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd, followCmd, unfollowCmd, likeCmd, unlikeCmd, commentCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in with the configured password and prints the session cookies.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.Login(cmd.Context())
		if err != nil {
			return err
		}
		creds := client.Credentials()
		fmt.Printf("logged in as %s (id %s, two-factor: %t)\n", creds.Username, res.UserID, res.TwoFactor)
		fmt.Printf("export %sCSRF_TOKEN=%s\n", envPrefix, creds.CSRFToken)
		fmt.Printf("export %sSESSION_ID=%s\n", envPrefix, creds.SessionID)
		return nil
	},
}

func friendshipCmd(action instagood.FriendshipAction) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <user>",
		Short: fmt.Sprintf("Performs %s on user, given as username or numeric id.", action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureSession(cmd.Context()); err != nil {
				return err
			}
			res, err := client.PerformFriendshipAction(cmd.Context(), action, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s %s: %s %s\n", res.Action, res.ID, res.Status, res.Result)
			return nil
		},
	}
}

func likeCmdFor(action instagood.LikeAction) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <media-id>",
		Short: fmt.Sprintf("Performs %s on a media.", action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureSession(cmd.Context()); err != nil {
				return err
			}
			res, err := client.PerformLikeAction(cmd.Context(), action, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s %s: %s\n", res.Action, res.MediaID, res.Status)
			return nil
		},
	}
}

var (
	followCmd   = friendshipCmd(instagood.ActionFollow)
	unfollowCmd = friendshipCmd(instagood.ActionUnfollow)
	likeCmd     = likeCmdFor(instagood.ActionLike)
	unlikeCmd   = likeCmdFor(instagood.ActionUnlike)
)

var commentCmd = &cobra.Command{
	Use:   "comment <media-id> <text>",
	Short: "Posts a top-level comment on a media.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSession(cmd.Context()); err != nil {
			return err
		}
		c, err := client.PostComment(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("comment %s on %s: %s\n", c.ID, c.MediaID, c.Status)
		return nil
	},
}
