package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sdkget/sdkget/internal/actions"
	"github.com/sdkget/sdkget/internal/catalog"
	"github.com/sdkget/sdkget/internal/config"
	"github.com/sdkget/sdkget/internal/httpcache"
	"github.com/sdkget/sdkget/internal/logging"
	"github.com/sdkget/sdkget/internal/verify"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath      string
	sdkmConfigPath  string
	productCategory string
	targetOS        string
	release         string

	quiet        bool
	debug        bool
	verbose      int
	levelFromCLI bool

	showVersion bool
	checkOnly   bool

	command   string
	selection actions.Selection
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}
	if opts.levelFromCLI {
		cfg.LogLevel = logging.LevelFromFlags(opts.quiet, opts.debug, opts.verbose)
	}

	logger, err := logging.InitLogger(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	runID := uuid.NewString()

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", runID)
		fields["cache_dir"] = cfg.CacheDir
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	if opts.command == "" {
		fmt.Fprintln(stdErr, "缺少子命令，支持 show / fetch / verify")
		return 2
	}
	if opts.sdkmConfigPath == "" {
		fmt.Fprintln(stdErr, "必须通过 -sdkm-config 指定 sdkm_config.json 路径")
		return 2
	}

	httpClient := httpcache.NewUpstreamClient(cfg.UpstreamTimeout.DurationValue())
	client, err := httpcache.NewClient(httpClient, cfg.CacheDir, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化缓存失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", runID)
	fields["command"] = opts.command
	fields["cache_dir"] = cfg.CacheDir
	logger.WithFields(fields).Info("开始执行")

	if err := dispatch(opts, cfg, client, logger.WithField("run_id", runID)); err != nil {
		fmt.Fprintf(stdErr, "%v\n", err)
		return 1
	}
	return 0
}

// dispatch 走完目录三级跳并执行选定的子命令。
func dispatch(opts cliOptions, cfg *config.Config, client *httpcache.Client, logger logrus.FieldLogger) error {
	ctx := context.Background()

	sdkmCfg, err := catalog.LoadSdkmConfig(opts.sdkmConfigPath)
	if err != nil {
		return err
	}

	l1, err := catalog.LoadL1(ctx, client, sdkmCfg.MainRepoURL)
	if err != nil {
		return err
	}
	l2URL, err := l1.ReleasesIndexURL(opts.productCategory, opts.targetOS)
	if err != nil {
		return err
	}

	l2, err := catalog.LoadL2(ctx, client, l2URL)
	if err != nil {
		return err
	}
	l3URL, err := l2.ReleaseURL(opts.release)
	if err != nil {
		return err
	}

	l3, err := catalog.LoadL3(ctx, client, l3URL, logger)
	if err != nil {
		return err
	}

	switch opts.command {
	case "show":
		return actions.Show(stdOut, l3, opts.selection)
	case "fetch":
		return actions.Fetch(ctx, l3, opts.selection, client, logger)
	case "verify":
		verifier := verify.NewVerifier(cfg.VerifyChunkSize, verifyProgress(logger))
		return actions.Verify(stdOut, l3, opts.selection, verifier, client.Paths(), logger)
	default:
		return fmt.Errorf("未知子命令: %s", opts.command)
	}
}

// verifyProgress 把校验进度挂到 debug 日志，纯上报，不影响控制流。
func verifyProgress(logger logrus.FieldLogger) verify.Progress {
	return func(done, total int64) {
		logger.WithFields(logrus.Fields{
			"action": "verify_progress",
			"done":   done,
			"total":  total,
		}).Debug("校验进度")
	}
}

// stringList 实现 flag.Value，允许同一选择器标志重复出现。
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// parseCLIFlags 解析全局标志与子命令标志，并结合环境变量计算配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("sdkget", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts cliOptions
	var configFlag string

	fs.StringVar(&configFlag, "config", "", "配置文件路径（可被 SDKGET_CONFIG 覆盖，缺省时使用默认值运行）")
	fs.StringVar(&opts.sdkmConfigPath, "sdkm-config", "", "SDKManager 的 sdkm_config.json 路径")
	fs.StringVar(&opts.productCategory, "product-category", "", "产品类别，留空时列出候选")
	fs.StringVar(&opts.targetOS, "target-os", "", "目标 OS，留空时列出候选")
	fs.StringVar(&opts.release, "release", "", "产品发布，留空时列出候选")
	fs.BoolVar(&opts.quiet, "quiet", false, "静默模式，屏蔽全部输出控制日志")
	fs.BoolVar(&opts.debug, "debug", false, "启用调试日志")
	fs.IntVar(&opts.verbose, "verbose", 0, "提升日志级别，数值越大越详细")
	fs.BoolVar(&opts.showVersion, "version", false, "显示版本信息")
	fs.BoolVar(&opts.checkOnly, "check-config", false, "仅校验配置后退出")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quiet", "debug", "verbose":
			opts.levelFromCLI = true
		}
	})

	path := os.Getenv("SDKGET_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	opts.configPath = path

	rest := fs.Args()
	if len(rest) == 0 {
		return opts, nil
	}

	opts.command = rest[0]
	switch opts.command {
	case "show", "fetch", "verify":
	default:
		return cliOptions{}, fmt.Errorf("未知子命令: %s", opts.command)
	}

	sub := flag.NewFlagSet(opts.command, flag.ContinueOnError)
	sub.SetOutput(io.Discard)

	var sections, groups, components stringList
	sub.Var(&sections, "section", "包分区，可重复指定")
	sub.Var(&groups, "group", "包分组，可重复指定")
	sub.Var(&components, "component", "包组件，可重复指定")

	if err := sub.Parse(rest[1:]); err != nil {
		return cliOptions{}, fmt.Errorf("解析 %s 参数失败: %w", opts.command, err)
	}

	opts.selection = actions.Selection{
		Sections:   sections,
		Groups:     groups,
		Components: components,
	}
	return opts, nil
}
