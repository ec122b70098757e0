package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/orgtree/internal/auth"
	"github.com/frahmantamala/orgtree/pkg/logger"
	"github.com/spf13/cobra"
)

var tokenOperator string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Operator token helpers",
}

var mintTokenCmd = &cobra.Command{
	Use:   "mint",
	Short: "Print an access token signed with the configured secret",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		gen := auth.NewJWTTokenGenerator(cfg.Security.TokenSecret, cfg.Security.AccessTokenDuration)
		svc := auth.NewService(cfg.Security.OperatorPasswordHash, gen, logger.L())

		token, err := svc.Mint(tokenOperator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token.AccessToken)
		fmt.Fprintf(os.Stderr, "expires at %s\n", token.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash to use as security.operator_password_hash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
	},
}

func init() {
	mintTokenCmd.Flags().StringVar(&tokenOperator, "operator", auth.OperatorSubject, "operator name carried in the token")

	tokenCmd.AddCommand(mintTokenCmd)
	tokenCmd.AddCommand(hashPasswordCmd)
}
