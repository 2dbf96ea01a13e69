package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"

	"agoranet.io/agora/lib/api"
	agoracommon "agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/httpcache"
	"agoranet.io/agora/lib/metrics"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/storage"
	"agoranet.io/agora/lib/vote"
	"agoranet.io/agora/lib/vote/resource"

	"agoranet.io/agora/cmd/agora/common"
)

const defaultBind string = "http://0.0.0.0:12345"
const defaultBlockTime string = "5s"
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagBindURL             string = agoracommon.GetENVValue("AGORA_BIND", defaultBind)
	flagStorageConfigString string
	flagMembership          string = agoracommon.GetENVValue("AGORA_MEMBERSHIP", "membership.json")
	flagBlockTimeString     string = agoracommon.GetENVValue("AGORA_BLOCK_TIME", defaultBlockTime)
	flagLogLevel            string = agoracommon.GetENVValue("AGORA_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput           string = agoracommon.GetENVValue("AGORA_LOG_OUTPUT", "")
	flagVerbose             bool   = agoracommon.GetENVValue("AGORA_VERBOSE", "0") == "1"
	flagMetrics             bool   = agoracommon.GetENVValue("AGORA_METRICS", "0") == "1"
	flagRateLimit           string = agoracommon.GetENVValue("AGORA_RATE_LIMIT", "100-M")
	flagHTTPCacheAdapter    string = agoracommon.GetENVValue("AGORA_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   int
	flagHTTPCacheRedisAddrs common.ListFlags
)

var (
	nodeCmd *cobra.Command

	bindEndpoint     *url.URL
	storageConfig    *storage.Config
	registry         *org.Registry
	blockTime        time.Duration
	rateLimitRule    agoracommon.RateLimitRule
	httpCacheAdapter httpcache.Adapter
	logLevel         logging.Lvl
	log              logging.Logger
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run agora node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = agoracommon.GetENVValue("AGORA_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "address to listen on ('http://0.0.0.0:12345')")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagMembership, "membership", flagMembership, "membership json file")
	nodeCmd.Flags().StringVar(&flagBlockTimeString, "block-time", flagBlockTimeString, "wall time per block height")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().BoolVar(&flagMetrics, "metrics", flagMetrics, "expose prometheus metrics")
	nodeCmd.Flags().StringVar(&flagRateLimit, "rate-limit", flagRateLimit, "api rate limit, '<limit>-<period>' ('100-M')")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: {mem, redis}")
	nodeCmd.Flags().IntVar(&flagHTTPCachePoolSize, "http-cache-pool-size", httpcache.DefaultPoolSize, "http cache pool size")
	nodeCmd.Flags().Var(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", "http cache redis address")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagsNode() {
	var err error

	if len(flagMembership) < 1 {
		common.PrintFlagsError(nodeCmd, "--membership", errors.New("must be given"))
	}
	if registry, err = org.NewRegistryFromFile(flagMembership); err != nil {
		common.PrintFlagsError(nodeCmd, "--membership", err)
	}

	if bindEndpoint, err = url.Parse(flagBindURL); err != nil {
		common.PrintFlagsError(nodeCmd, "--bind", err)
	}
	if len(bindEndpoint.Host) < 1 {
		common.PrintFlagsError(nodeCmd, "--bind", errors.New("host:port must be given"))
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}

	if blockTime, err = time.ParseDuration(flagBlockTimeString); err != nil {
		common.PrintFlagsError(nodeCmd, "--block-time", err)
	}
	if blockTime <= 0 {
		common.PrintFlagsError(nodeCmd, "--block-time", errors.New("must be positive"))
	}

	var rate limiter.Rate
	if rate, err = limiter.NewRateFromFormatted(flagRateLimit); err != nil {
		common.PrintFlagsError(nodeCmd, "--rate-limit", err)
	}
	rateLimitRule = agoracommon.NewRateLimitRule(rate)

	if len(flagHTTPCacheAdapter) > 0 {
		redisAddrs := map[string]string{}
		for i, addr := range flagHTTPCacheRedisAddrs {
			redisAddrs[fmt.Sprintf("redis-%d", i)] = addr
		}
		if httpCacheAdapter, err = httpcache.NewAdapter(flagHTTPCacheAdapter, flagHTTPCachePoolSize, redisAddrs); err != nil {
			common.PrintFlagsError(nodeCmd, "--http-cache-adapter", err)
		}
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(nodeCmd, "--log-level", err)
	}
	if flagVerbose {
		logLevel = logging.LvlDebug
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = agoracommon.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			common.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	vote.SetLogging(logLevel, logHandler)

	log.Info("Starting Agora")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tbind", flagBindURL)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tmembership", flagMembership)
	parsedFlags = append(parsedFlags, "\n\tblock-time", flagBlockTimeString)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\tmetrics", flagMetrics)
	parsedFlags = append(parsedFlags, "\n\trate-limit", flagRateLimit)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}
	defer st.Close()

	height, err := vote.LoadChainHeight(st)
	if err != nil {
		log.Crit("failed to load chain height", "error", err)

		os.Exit(1)
	}

	clock := vote.NewChainClock(height)
	engine := vote.NewEngine(st, clock, registry)

	if flagMetrics {
		metrics.InitPrometheusMetrics()
	}

	apiHandler := api.NewNetworkHandlerAPI(engine, registry, resource.APIPrefix)
	if httpCacheAdapter != nil {
		cacheClient, err := httpcache.NewClient(
			httpcache.WithAdapter(httpCacheAdapter),
			httpcache.WithExpire(blockTime),
			httpcache.WithLogger(log),
		)
		if err != nil {
			log.Crit("failed to initialize http cache", "error", err)

			os.Exit(1)
		}
		apiHandler.SetCache(cacheClient)
	}

	router := mux.NewRouter()
	router.Use(api.RateLimitMiddleware(rateLimitRule))
	apiHandler.AddAPIHandlers(router)
	if flagMetrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	server := &http.Server{
		Addr:    bindEndpoint.Host,
		Handler: handlers.CombinedLoggingHandler(os.Stdout, router),
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", bindEndpoint.Host)
			return server.ListenAndServe()
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		})
	}
	{
		ticker := time.NewTicker(blockTime)
		done := make(chan struct{})
		g.Add(func() error {
			for {
				select {
				case <-ticker.C:
					height := clock.Tick()
					if err := vote.SaveChainHeight(st, height); err != nil {
						return err
					}
					log.Debug("height advanced", "height", height)
				case <-done:
					return nil
				}
			}
		}, func(error) {
			ticker.Stop()
			close(done)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel, log)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
