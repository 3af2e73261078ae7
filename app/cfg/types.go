package cfg

type Cfg struct {
	// Telegram configuration
	TelegramBotToken  string
	TelegramChannelID string

	// Application configuration
	GamesDir          string
	DataDir           string
	StoreBackend      string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string
	Serve             bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
