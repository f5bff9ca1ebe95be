package utils

import (
	"github.com/easyada/cardano-wallet/log"
	"github.com/urfave/cli/v2"
)

// common flags
var (
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "config file path",
		Value: "config.toml",
	}
	LogFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "log file, support rotate",
	}
	LogRotationFlag = &cli.Uint64Flag{
		Name:  "log.rotate",
		Usage: "log rotation time (unit hour)",
		Value: 24,
	}
	LogMaxAgeFlag = &cli.Uint64Flag{
		Name:  "log.maxage",
		Usage: "log max age (unit hour)",
		Value: 720,
	}
	VerbosityFlag = &cli.Uint64Flag{
		Name:  "verbosity",
		Usage: "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value: 4,
	}
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "output log in color text format",
		Value: true,
	}
)

// CommonLogFlags common log flags
var CommonLogFlags = []cli.Flag{
	VerbosityFlag,
	JSONFormatFlag,
	ColorFormatFlag,
}

// SetLogger set logger by flags
func SetLogger(ctx *cli.Context) {
	logLevel := uint32(ctx.Uint64(VerbosityFlag.Name))
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(logLevel, jsonFormat, colorFormat)

	logFile := ctx.String(LogFileFlag.Name)
	if logFile != "" {
		logRotation := ctx.Uint64(LogRotationFlag.Name)
		logMaxAge := ctx.Uint64(LogMaxAgeFlag.Name)
		log.SetLogFile(logFile, logRotation, logMaxAge)
	}
}

// GetConfigFilePath specified by `--config`
func GetConfigFilePath(ctx *cli.Context) string {
	return ctx.String(ConfigFileFlag.Name)
}
