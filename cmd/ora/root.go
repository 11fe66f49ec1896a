package main

import (
	"strings"
	"time"

	"github.com/shamank/ora-sdk-go/pkg/config"
	"github.com/shamank/ora-sdk-go/pkg/oracle"
	"github.com/shamank/ora-sdk-go/pkg/sdk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "ORA"

const (
	flagConfig        = "config"
	flagDebug         = "debug"
	flagNetwork       = "network"
	flagRPCURL        = "rpc-url"
	flagPromptAddress = "prompt-address"
	flagPrivateKey    = "private-key"
	flagNamespace     = "namespace"
	flagIpfsURL       = "ipfs-url"
	flagLighthouseURL = "lighthouse-url"

	flagStatsdEnabled    = "datadog.statsd.enabled"
	flagStatsdURL        = "datadog.statsd.url"
	flagStatsdSampleRate = "datadog.statsd.sample-rate"
	flagPrometheus       = "prometheus.enabled"

	flagDialTimeout    = "timeout.dial"
	flagReadTimeout    = "timeout.read"
	flagSubmitTimeout  = "timeout.submit"
	flagReceiptTimeout = "timeout.receipt"
	flagStorageTimeout = "timeout.storage"
)

// cli carries state shared by the subcommands.
type cli struct {
	v *viper.Viper
	// newSDK is replaced in tests.
	newSDK func(*config.Config) (sdk.OraSDK, error)
}

func newRootCmd() *cobra.Command {
	c := &cli{
		v:      viper.New(),
		newSDK: sdk.NewSDK,
	}
	return c.rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ora",
		Short:         "Query and pay the ORA AI oracle from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", `YAML config file; flags and ORA_* variables override it`)
	flags.Bool(flagDebug, false, `"true" or "false"`)
	flags.StringP(flagNetwork, "n", oracle.NetworkSepolia, `The chain to use (mainnet, sepolia)`)
	flags.String(flagRPCURL, "", `e.g. "https://sepolia.infura.io/v3/<key>"`)
	flags.String(flagPromptAddress, "", `Prompt contract address (default: the network's published address)`)
	flags.String(flagPrivateKey, "", `Hex private key used to sign transactions; prefer ORA_PRIVATE_KEY`)
	flags.String(flagNamespace, oracle.DefaultNamespace, `Plugin namespace`)
	flags.String(flagIpfsURL, "", `IPFS HTTP API, e.g. "http://127.0.0.1:5001"`)
	flags.String(flagLighthouseURL, "", `Lighthouse gateway, e.g. "https://gateway.lighthouse.storage/ipfs/"`)

	flags.Bool(flagStatsdEnabled, false, `e.g. "true" or "false"`)
	flags.String(flagStatsdURL, "", `e.g. "localhost:8125"`)
	flags.Float64(flagStatsdSampleRate, 1.0, `The sample rate to use for statsd metrics`)
	flags.Bool(flagPrometheus, false, `Register oracle metrics on the default Prometheus registry`)

	flags.Duration(flagDialTimeout, 0, `Dial timeout (default 5s)`)
	flags.Duration(flagReadTimeout, 0, `eth_call timeout (default 12s)`)
	flags.Duration(flagSubmitTimeout, 0, `Transaction submit timeout (default 25s)`)
	flags.Duration(flagReceiptTimeout, 0, `Receipt wait timeout (default 90s)`)
	flags.Duration(flagStorageTimeout, 0, `IPFS/Lighthouse read timeout (default 30s)`)

	rootCmd.AddCommand(c.modelsCmd())
	rootCmd.AddCommand(c.feeCmd())
	rootCmd.AddCommand(c.resultCmd())
	rootCmd.AddCommand(c.requestCmd())

	c.initConfig()
	flags.VisitAll(func(f *pflag.Flag) {
		c.v.BindPFlag(f.Name, f) //nolint:errcheck
		c.v.BindEnv(f.Name)      //nolint:errcheck
	})

	return rootCmd
}

func (c *cli) initConfig() {
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.v.AutomaticEnv()
}

// buildConfig merges the YAML file (if any) with explicitly set flags and
// environment variables. Validation is left to sdk.NewSDK.
func (c *cli) buildConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.v.GetString(flagConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	setString := func(key string, dst *string) {
		if c.v.IsSet(key) {
			*dst = c.v.GetString(key)
		}
	}
	setString(flagRPCURL, &cfg.RPCAddr)
	setString(flagPromptAddress, &cfg.PromptAddress)
	setString(flagPrivateKey, &cfg.PrivateKey)
	setString(flagNamespace, &cfg.Namespace)
	setString(flagIpfsURL, &cfg.IpfsURL)
	setString(flagLighthouseURL, &cfg.LighthouseURL)
	setString(flagStatsdURL, &cfg.Metrics.DataDog.StatsdURL)

	if c.v.IsSet(flagNetwork) || cfg.Network == (config.Network{}) {
		name := c.v.GetString(flagNetwork)
		if n, ok := config.NetworkByName(name); ok {
			cfg.Network = n
		} else {
			cfg.Network = config.Network{Name: name}
		}
	}

	if c.v.IsSet(flagDebug) {
		cfg.Debug = c.v.GetBool(flagDebug)
	}
	if c.v.IsSet(flagStatsdEnabled) {
		cfg.Metrics.DataDog.Enabled = c.v.GetBool(flagStatsdEnabled)
	}
	if c.v.IsSet(flagStatsdSampleRate) || cfg.Metrics.DataDog.SampleRate == 0 {
		cfg.Metrics.DataDog.SampleRate = c.v.GetFloat64(flagStatsdSampleRate)
	}
	if c.v.IsSet(flagPrometheus) {
		cfg.Metrics.Prometheus.Enabled = c.v.GetBool(flagPrometheus)
	}

	for key, dst := range map[string]*time.Duration{
		flagDialTimeout:    &cfg.Timeouts.Dial,
		flagReadTimeout:    &cfg.Timeouts.ChainRead,
		flagSubmitTimeout:  &cfg.Timeouts.ChainSubmit,
		flagReceiptTimeout: &cfg.Timeouts.ReceiptWait,
		flagStorageTimeout: &cfg.Timeouts.StorageRead,
	} {
		if c.v.IsSet(key) {
			*dst = c.v.GetDuration(key)
		}
	}

	return cfg, nil
}

// connect builds the config and initializes the SDK.
func (c *cli) connect() (sdk.OraSDK, *config.Config, error) {
	cfg, err := c.buildConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := c.newSDK(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}
