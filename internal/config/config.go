package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"
)

const DefaultServerPort = 8080
const MaxClients = 100
const DefaultGameType = "chinese-chess"

const HeartbeatInterval = 30 * time.Second
const ConnectTimeout = 10 * time.Second
const ShutdownGracePeriod = 5 * time.Second

const logsDirectory = "logs"

const VendorName = "chesslink"
const ApplicationName = "chesslink"

const UserColor = lipgloss.Color("#C3423F")
const ForegroundShadeColor = lipgloss.Color("#555555")

var serverAddress string
var playerName string
var debug bool
var anonymous bool
var kafkaBrokers string
var kafkaTopic string

var Logger *zap.Logger
var LogFilePath string

// SetupLogger builds the client logger. Output goes to a file so that
// logging never interferes with the terminal UI.
func SetupLogger() {
	var c zap.Config
	if debug {
		c = zap.NewDevelopmentConfig()
	} else {
		c = zap.NewProductionConfig()
	}

	LogFilePath = createLogFile()
	c.OutputPaths = []string{LogFilePath}
	c.Development = false
	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	Logger = logger
}

// SetupServerLogger builds a console logger for the server process.
func SetupServerLogger() {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	Logger = logger
}

func createLogFile() string {
	name := fmt.Sprintf("chesslink-%s.log", time.Now().UTC().Format(time.RFC3339))
	name = strings.Replace(name, ":", "-", -1)

	configDirs := configdir.New(VendorName, ApplicationName)
	folders := configDirs.QueryFolders(configdir.Global)
	path := filepath.Join(folders[0].Path, logsDirectory, name)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		panic(err)
	}

	if _, err := os.Create(path); err != nil {
		panic(err)
	}

	return path
}

func ParseArguments() {
	flag.StringVar(&serverAddress, "server", fmt.Sprintf("127.0.0.1:%d", DefaultServerPort), "Game server address")
	flag.StringVar(&playerName, "name", "", "Player display name")
	flag.BoolVar(&debug, "debug", false, "Show debug info")
	flag.BoolVar(&anonymous, "anonymous", false, "Do not store player identity on disk")
	flag.StringVar(&kafkaBrokers, "kafka.brokers", "", "Kafka brokers for analytics events (disabled when empty)")
	flag.StringVar(&kafkaTopic, "kafka.topic", "chesslink-events", "Kafka topic for analytics events")
	flag.Parse()
}

func ServerAddress() string {
	return serverAddress
}

func PlayerName() string {
	return playerName
}

func Debug() bool {
	return debug
}

func Anonymous() bool {
	return anonymous
}

func KafkaBrokers() string {
	return kafkaBrokers
}

func KafkaTopic() string {
	return kafkaTopic
}
