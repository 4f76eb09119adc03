package main

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yakoovad/hackathon-registration/internal/client"
	"github.com/yakoovad/hackathon-registration/internal/config"
	"github.com/yakoovad/hackathon-registration/internal/form"
	"github.com/yakoovad/hackathon-registration/pkg/logger"
	"go.uber.org/zap"
)

type submitOptions struct {
	values  map[form.Field]*string
	members []string
	baseURL string
	timeout time.Duration
}

func submitCmd() *cobra.Command {
	opts := &submitOptions{values: map[form.Field]*string{}}
	for _, f := range form.InputFields {
		opts.values[f] = new(string)
	}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Register a team",
		Example: `  register submit --team-name Nova --track healthcare --team-size 2 \
    --lead-name "Asha Rao" --lead-email asha@example.com --lead-phone 98765-43210 \
    --member "Ravi Kumar <ravi@example.com>"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(opts.values[form.FieldTeamName], "team-name", "", "Team name")
	flags.StringVar(opts.values[form.FieldProblemTrack], "track", "", "Problem track")
	flags.StringVar(opts.values[form.FieldTeamSize], "team-size", "", "Team size including the lead (1-5)")
	flags.StringVar(opts.values[form.FieldLeadName], "lead-name", "", "Team lead full name")
	flags.StringVar(opts.values[form.FieldLeadEmail], "lead-email", "", "Team lead email")
	flags.StringVar(opts.values[form.FieldLeadPhone], "lead-phone", "", "Team lead phone, non-digits are dropped")
	flags.StringArrayVar(&opts.members, "member", nil, `Additional member as "Name <email>" or "Name" (repeatable, up to 4)`)
	flags.StringVar(&opts.baseURL, "base-url", "", "Registration server base URL (overrides REGISTRATION_BASE_URL)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (overrides REGISTRATION_TIMEOUT)")

	return cmd
}

func runSubmit(cmd *cobra.Command, opts *submitOptions) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(opts.baseURL), "/")
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}

	l, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	view := newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctrl := form.NewController(view, client.New(cfg.BaseURL, cfg.Timeout)).
		WithLogger(l).
		WithBaseURL(cfg.BaseURL)

	for _, f := range form.InputFields {
		raw := *opts.values[f]
		view.SetValue(f, raw)
		ctrl.Input(f, raw)
	}

	for _, raw := range opts.members {
		row, err := ctrl.AddMember()
		if err != nil {
			return errors.Wrapf(err, "member %q", raw)
		}
		name, email := parseMember(raw)
		row.SetName(name)
		row.SetEmail(email)
	}

	state := ctrl.Submit(cmd.Context())
	l.Debug("submission finished", zap.String("state", string(state)))

	if state != form.StateSuccess {
		return errors.Errorf("registration not completed: %s", state)
	}
	return nil
}

// parseMember splits "Name <email>" into its parts. A value without an
// address is taken as a bare name.
func parseMember(s string) (string, string) {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "<")
	if open < 0 || !strings.HasSuffix(s, ">") {
		return s, ""
	}
	return strings.TrimSpace(s[:open]), strings.TrimSpace(s[open+1 : len(s)-1])
}
