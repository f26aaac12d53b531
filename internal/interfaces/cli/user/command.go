package user

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	userApp "ticketapp/internal/application/user"
	userDto "ticketapp/internal/application/user/dto"
	"ticketapp/internal/infrastructure/auth"
	"ticketapp/internal/infrastructure/config"
	"ticketapp/internal/infrastructure/database"
	"ticketapp/internal/infrastructure/migration"
	"ticketapp/internal/infrastructure/repository"
	"ticketapp/internal/interfaces/cli/bootstrap"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/logger"
)

var (
	opts     bootstrap.Options
	username string
	password string
	role     string
	output   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts from the command line",
		Long:  `Create accounts (including the first administrator) and list existing ones.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newCreateCommand(), newListCommand())
	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long:  `Create an account. The password is prompted for when --password is omitted.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")
	cmd.Flags().StringVarP(&role, "role", "r", string(authorization.RoleUser), "Role: user or admin")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE:  runList,
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or yaml")
	return cmd
}

func newService(cfg *config.Config, log logger.Interface) *userApp.Service {
	repo := repository.NewUserRepository(database.Get(), log)
	return userApp.NewService(repo, auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost), log)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(username)
	if name == "" {
		return errors.New("username is required")
	}

	parsedRole, err := authorization.ParseUserRole(role)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer bootstrap.Teardown()

	pw := password
	if pw == "" {
		pw, err = promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}
	if utf8.RuneCountInString(pw) < cfg.Auth.Password.MinLength {
		return fmt.Errorf("password must be at least %d characters long", cfg.Auth.Password.MinLength)
	}

	if err := migration.InitializeSchema(cmd.Context(), database.Get()); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	created, err := newService(cfg, log).CreateUser(cmd.Context(), name, pw, parsedRole)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("username %q already exists", name)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", name, parsedRole)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer bootstrap.Teardown()

	users, err := newService(cfg, log).ListUsersFull(cmd.Context())
	if err != nil {
		return err
	}

	return writeUsers(cmd.OutOrStdout(), userDto.ToUserDTOList(users), output)
}

func writeUsers(w io.Writer, users []*userDto.UserDTO, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(users); err != nil {
			return fmt.Errorf("failed to encode users: %w", err)
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tCREATED")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// promptPassword reads without echo on a terminal and a plain line otherwise.
func promptPassword(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
