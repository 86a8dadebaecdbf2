package commands

import (
	"context"
	"database/sql"
	"fmt"
	"leagueexport/lib/configutil"
	"leagueexport/lib/oauth"
	"leagueexport/lib/platforms/yahoo"
	"leagueexport/lib/restyutil"
	"leagueexport/lib/scrapers/fantasypros"
	"leagueexport/lib/sqliteutil"
	"leagueexport/lib/timezone"
	"leagueexport/services/delivery"
	"leagueexport/services/linker"
	linkerdb "leagueexport/services/linker/db"
	"leagueexport/services/pipeline"
	"leagueexport/services/snapshots"
	snapshotsdb "leagueexport/services/snapshots/db"
	"leagueexport/services/transactions"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envConsumerKey    = "YAHOO_CONSUMER_KEY"
	envConsumerSecret = "YAHOO_CONSUMER_SECRET"
	envAccessToken    = "YAHOO_ACCESS_TOKEN_JSON"
	envSmtpPassword   = "LEAGUEEXPORT_SMTP_PASSWORD"
)

type YahooConfig struct {
	BaseUrl  string `json:"base_url"`
	TokenUrl string `json:"token_url"`
	GameKey  string `json:"game_key"`
	LeagueId string `json:"league_id"`
	// write refreshed access tokens back to the env file
	SaveTokenToEnv bool `json:"save_token_to_env"`
	MaxPlayers     int  `json:"max_players"`
}

type FantasyProsConfig struct {
	BaseUrl          string `json:"base_url"`
	Scoring          string `json:"scoring"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
}

type JoinConfig struct {
	Policy string `json:"policy"`
	TopN   int    `json:"top_n"`
}

type TransactionsConfig struct {
	WeekStartOffset string `json:"week_start_offset"`
	WeekEndOffset   string `json:"week_end_offset"`
}

type DeliveryConfig struct {
	Smtp       delivery.SmtpConfig `json:"smtp"`
	LeagueName string              `json:"league_name"`
	Recipients []string            `json:"recipients"`
}

type Config struct {
	OutputDir    string             `json:"output_dir"`
	Timezone     string             `json:"timezone"`
	EnvFile      string             `json:"env_file"`
	Database     sqliteutil.Config  `json:"database"`
	Yahoo        YahooConfig        `json:"yahoo"`
	FantasyPros  FantasyProsConfig  `json:"fantasypros"`
	Join         JoinConfig         `json:"join"`
	Transactions TransactionsConfig `json:"transactions"`
	Delivery     DeliveryConfig     `json:"delivery"`
}

// app is the configuration of one invocation and the resources opened
// from it.
type app struct {
	config  Config
	dir     string
	verbose bool
	db      *sql.DB
}

func loadApp(configName string, verbose bool) (*app, error) {
	config, dir, err := configutil.ReadRecursively[Config](configName)
	if os.IsNotExist(err) {
		slog.Warn("no configuration file found, using defaults", "name", configName)
		dir, err = os.Getwd()
	}
	if err != nil {
		return nil, err
	}

	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.EnvFile == "" {
		config.EnvFile = ".env"
	}
	if config.Database.File == "" && config.Database.Url == "" {
		config.Database.File = "leagueexport.db"
	}

	a := &app{config: config, dir: dir, verbose: verbose}

	err = configutil.LoadEnvFile(a.path(config.EnvFile))
	if err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	err = timezone.SetLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return a, nil
}

// path resolves a configured path against the directory of the config file.
func (a *app) path(p string) string {
	resolved, err := configutil.ResolvePath(a.dir, p)
	if err != nil {
		slog.Warn("failed to resolve path", "path", p, "err", err)
		return p
	}
	return resolved
}

func (a *app) outputDir() string {
	return a.path(a.config.OutputDir)
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) openDB() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	config := a.config.Database
	if config.File != "" {
		config.File = a.path(config.File)
	}
	database, err := sqliteutil.OpenDB(config, linkerdb.Schema, snapshotsdb.Schema)
	if err != nil {
		return nil, err
	}
	a.db = database
	return database, nil
}

func (a *app) overrides() (linker.OverrideStore, error) {
	database, err := a.openDB()
	if err != nil {
		return linker.OverrideStore{}, err
	}
	return linker.NewOverrideStore(database), nil
}

func (a *app) snapshots() (snapshots.Store, error) {
	database, err := a.openDB()
	if err != nil {
		return snapshots.Store{}, err
	}
	return snapshots.NewStore(database), nil
}

func (a *app) instrumentOutput(name string) restyutil.InstrumentOutput {
	if !a.verbose {
		return nil
	}
	output, err := restyutil.NewFilesystemOutput(a.path(filepath.Join(".dev", "resty", name)))
	if err != nil {
		slog.Warn("failed to create http dump directory", "err", err)
		return nil
	}
	return output
}

func (a *app) yahoo() (*yahoo.Client, error) {
	rawToken := os.Getenv(envAccessToken)
	if rawToken == "" {
		return nil, fmt.Errorf("%s is not set", envAccessToken)
	}
	token, err := oauth.ParseToken(rawToken)
	if err != nil {
		return nil, err
	}

	envPath := a.path(a.config.EnvFile)
	return yahoo.NewClient(yahoo.ClientOptions{
		BaseUrl:        a.config.Yahoo.BaseUrl,
		TokenUrl:       a.config.Yahoo.TokenUrl,
		GameKey:        a.config.Yahoo.GameKey,
		LeagueId:       a.config.Yahoo.LeagueId,
		ConsumerKey:    os.Getenv(envConsumerKey),
		ConsumerSecret: os.Getenv(envConsumerSecret),
		Token:          token,
		MaxPlayers:     a.config.Yahoo.MaxPlayers,
		OnTokenRefresh: func(token oauth.Token) error {
			serialized, err := token.Json()
			if err != nil {
				return err
			}
			os.Setenv(envAccessToken, serialized)
			if !a.config.Yahoo.SaveTokenToEnv {
				return nil
			}
			slog.Info("saving refreshed yahoo token", "path", envPath)
			return configutil.WriteEnvValue(envPath, envAccessToken, serialized)
		},
		InstrumentOutput: a.instrumentOutput("yahoo"),
	})
}

func (a *app) fantasyPros(limit int) (*fantasypros.Client, error) {
	return fantasypros.NewClient(fantasypros.ClientOptions{
		BaseUrl:          a.config.FantasyPros.BaseUrl,
		Scoring:          a.config.FantasyPros.Scoring,
		Limit:            limit,
		CloudflareBypass: a.config.FantasyPros.CloudflareBypass,
		InstrumentOutput: a.instrumentOutput("fantasypros"),
	})
}

type pipelineFlags struct {
	strict         bool
	refreshPlayers bool
}

func (a *app) pipeline(ctx context.Context, flags pipelineFlags) (*pipeline.Pipeline, error) {
	league, err := a.yahoo()
	if err != nil {
		return nil, fmt.Errorf("yahoo client: %w", err)
	}

	topN := a.config.Join.TopN
	if topN <= 0 {
		topN = pipeline.DefaultTopN
	}
	scores, err := a.fantasyPros(topN)
	if err != nil {
		return nil, fmt.Errorf("fantasypros client: %w", err)
	}

	policy, err := linker.ParsePolicy(a.config.Join.Policy)
	if err != nil {
		return nil, err
	}
	offset, err := transactions.ParseOffset(
		a.config.Transactions.WeekStartOffset,
		a.config.Transactions.WeekEndOffset,
	)
	if err != nil {
		return nil, err
	}

	overrides, err := a.overrides()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store, err := a.snapshots()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	slog.DebugContext(ctx, "pipeline configured",
		"league", league.LeagueKey(),
		"output_dir", a.outputDir(),
		"policy", policy,
		"offset_start", offset.Start,
		"offset_end", offset.End,
	)

	return pipeline.New(pipeline.Params{
		League:    league,
		Scores:    scores,
		Snapshots: store,
		Overrides: overrides,
		Options: pipeline.Options{
			OutputDir:      a.outputDir(),
			TopN:           topN,
			JoinPolicy:     policy,
			Strict:         flags.strict,
			RefreshPlayers: flags.refreshPlayers,
			Offset:         offset,
			Location:       timezone.Location,
		},
	})
}

func (a *app) delivery() delivery.Service {
	smtp := a.config.Delivery.Smtp
	smtp.Password = os.Getenv(envSmtpPassword)
	return delivery.NewService(delivery.Options{
		Smtp:       smtp,
		LeagueName: a.config.Delivery.LeagueName,
		Recipients: a.config.Delivery.Recipients,
	})
}
