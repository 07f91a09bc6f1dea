package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"telegram_initdata/internal/config"
	"telegram_initdata/internal/initdata"

	"github.com/urfave/cli/v2"
)

// exitInvalid is returned when the payload itself is rejected, as opposed
// to bad usage.
const exitInvalid = 2

func newApp() *cli.App {
	return &cli.App{
		Name:  "initdata_check",
		Usage: "verify and decode Telegram Mini App init data",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "verify the payload and print it decoded",
				ArgsUsage: "[init data, read from stdin when omitted]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scheme", Value: string(config.SchemeStandard), EnvVars: []string{"INIT_DATA_SCHEME"}, Usage: "standard, third_party or signature"},
					&cli.StringFlag{Name: "bot-token", EnvVars: []string{"BOT_TOKEN"}},
					&cli.StringFlag{Name: "third-party-token", EnvVars: []string{"THIRD_PARTY_TOKEN"}},
					&cli.Int64Flag{Name: "bot-id", EnvVars: []string{"BOT_ID"}},
					&cli.BoolFlag{Name: "test-env", EnvVars: []string{"TELEGRAM_TEST_ENV"}, Usage: "use the test environment public key"},
					&cli.DurationFlag{Name: "max-age", Value: initdata.DefaultMaxAge, Usage: "0 disables the expiry check"},
				},
				Action: validate,
			},
			{
				Name:      "inspect",
				Usage:     "decode without verifying and print the data-check string",
				ArgsUsage: "[init data, read from stdin when omitted]",
				Action:    inspect,
			},
		},
	}
}

func readPayload(c *cli.Context) (string, error) {
	if raw := c.Args().First(); raw != "" {
		return raw, nil
	}
	b, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func validate(c *cli.Context) error {
	raw, err := readPayload(c)
	if err != nil {
		return err
	}

	var (
		data   *initdata.InitData
		maxAge = c.Duration("max-age")
	)
	switch config.Scheme(c.String("scheme")) {
	case config.SchemeStandard:
		data, err = initdata.Validate(raw, c.String("bot-token"), maxAge)
	case config.SchemeThirdParty:
		data, err = initdata.ValidateThirdParty(raw, c.String("bot-token"), c.String("third-party-token"), maxAge)
	case config.SchemeSignature:
		data, err = initdata.ValidateSignature(raw, c.Int64("bot-id"), initdata.PublicKeyFor(c.Bool("test-env")), maxAge)
	default:
		return cli.Exit(fmt.Sprintf("unknown scheme %q", c.String("scheme")), 1)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid (%s): %v", initdata.Kind(err), err), exitInvalid)
	}
	return printJSON(c.App.Writer, data)
}

func inspect(c *cli.Context) error {
	raw, err := readPayload(c)
	if err != nil {
		return err
	}
	fields, err := initdata.Parse(raw)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid (%s): %v", initdata.Kind(err), err), exitInvalid)
	}
	data, err := initdata.Decode(fields)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid (%s): %v", initdata.Kind(err), err), exitInvalid)
	}

	out := struct {
		DataCheckString string             `json:"data_check_string"`
		AuthAge         string             `json:"auth_age,omitempty"`
		InitData        *initdata.InitData `json:"init_data"`
	}{
		DataCheckString: initdata.DataCheckString(fields),
		InitData:        data,
	}
	if !data.AuthDate.IsZero() {
		out.AuthAge = time.Since(data.AuthDate).Round(time.Second).String()
	}
	return printJSON(c.App.Writer, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
