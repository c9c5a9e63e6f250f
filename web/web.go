package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shaanadrian1/AuthAudioBot/config"
	"github.com/Shaanadrian1/AuthAudioBot/logger"
	"github.com/Shaanadrian1/AuthAudioBot/web/controller"
	"github.com/Shaanadrian1/AuthAudioBot/web/job"
	"github.com/Shaanadrian1/AuthAudioBot/web/middleware"
	"github.com/Shaanadrian1/AuthAudioBot/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	cron "github.com/robfig/cron/v3"
)

//go:embed assets/*
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

var startTime = time.Now()

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{
		File: file,
	}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{
		FileInfo: info,
	}, nil
}

// wrapAssetsFileInfo pins ModTime to process start so embedded assets
// get a stable Last-Modified header.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// keepAliveListener sets TCP keep-alive on every accepted connection.
type keepAliveListener struct {
	*net.TCPListener
	KeepAlivePeriod time.Duration
}

func (l keepAliveListener) Accept() (net.Conn, error) {
	tc, err := l.TCPListener.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err := tc.SetKeepAlive(true); err != nil {
		logger.Warning("failed to set KeepAlive:", err)
	}
	if err := tc.SetKeepAlivePeriod(l.KeepAlivePeriod); err != nil {
		logger.Warning("failed to set KeepAlivePeriod:", err)
	}
	return tc, nil
}

type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	panel *controller.PanelController
	api   *controller.APIController

	settingService *service.SettingService
	serverService  *service.ServerService
	botUserService *service.BotUserService
	usageService   *service.UsageService
	tgbotService   service.TelegramService
	logForwarder   *service.LogForwarder

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(
	serverService *service.ServerService,
	settingService *service.SettingService,
	botUserService *service.BotUserService,
	usageService *service.UsageService,
	tgbotService service.TelegramService,
	logForwarder *service.LogForwarder,
) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:            ctx,
		cancel:         cancel,
		serverService:  serverService,
		settingService: settingService,
		botUserService: botUserService,
		usageService:   usageService,
		tgbotService:   tgbotService,
		logForwarder:   logForwarder,
	}
}

func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".html") {
			return nil
		}
		b, err := htmlFS.ReadFile(path)
		if err != nil {
			return err
		}
		// templates are addressed without the "html/" prefix
		name := strings.TrimPrefix(path, "html/")
		_, err = t.New(name).Parse(string(b))
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RecoveryMiddleware())

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{basePath + "panel/api/"})))
	assetsBasePath := basePath + "assets/"

	store := cookie.NewStore(secret)
	engine.Use(sessions.Sessions("audiobot", store))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})
	engine.Use(func(c *gin.Context) {
		uri := c.Request.RequestURI
		if strings.HasPrefix(uri, assetsBasePath) {
			c.Header("Cache-Control", "max-age=31536000")
		}
	})

	if config.IsDebug() {
		// for development
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS(basePath+"assets", http.FS(os.DirFS("web/assets")))
	} else {
		// for production
		t, err := s.getHtmlTemplate(engine.FuncMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(t)
		engine.StaticFS(basePath+"assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}

	g := engine.Group(basePath)

	s.index = controller.NewIndexController(g)
	s.panel = controller.NewPanelController(g)
	s.api = controller.NewAPIController(g, s.serverService)

	return engine, nil
}

func (s *Server) startTask() {
	tgbot, _ := s.tgbotService.(*service.Tgbot)

	// expired callback hashes are swept while the bot runs
	if tgbot != nil {
		_, _ = s.cron.AddJob("@every 2m", job.NewCheckHashStorageJob(tgbot))
	}

	// usage records past retention go away once per purge interval
	_, _ = s.cron.AddJob(fmt.Sprintf("@every %s", config.UsagePurgeInterval), job.NewPurgeUsageJob(s.usageService))

	isTgbotEnabled, err := s.settingService.GetTgbotEnabled()
	if err == nil && isTgbotEnabled {
		runTime, err := s.settingService.GetTgBotRuntime()
		if err != nil || runTime == "" {
			runTime = "@daily"
		}
		logger.Infof("Telegram bot daily digest scheduled at %s", runTime)
		_, _ = s.cron.AddJob(runTime, job.NewStatsNotifyJob(s.usageService, s.botUserService, s.tgbotService))
	}
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds(), cron.WithChain(cron.Recover(CronLogger{})))
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}
	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))

	baseListener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	var listener net.Listener
	if tcpListener, ok := baseListener.(*net.TCPListener); ok {
		listener = keepAliveListener{
			TCPListener:     tcpListener,
			KeepAlivePeriod: 5 * time.Second,
		}
	} else {
		listener = baseListener
	}
	logger.Info("web server running HTTP on", listener.Addr())
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      engine,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	isTgbotEnabled, err := s.settingService.GetTgbotEnabled()
	if err == nil && isTgbotEnabled {
		if tgbot, ok := s.tgbotService.(*service.Tgbot); ok {
			if err := tgbot.Start(); err != nil {
				logger.Warning("start Telegram bot failed:", err)
			} else if s.logForwarder != nil {
				_ = s.logForwarder.Start()
			}
		} else {
			logger.Warning("Telegram bot enabled but no bot instance was injected")
		}
	}

	return nil
}

func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.logForwarder != nil {
		_ = s.logForwarder.Stop()
	}
	if tgbot, ok := s.tgbotService.(*service.Tgbot); ok {
		if tgbot.IsRunning() {
			tgbot.Stop()
		}
	}
	var err1 error
	var err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	if err1 != nil {
		return err1
	}
	return err2
}

func (s *Server) GetCtx() context.Context {
	return s.ctx
}

func (s *Server) GetCron() *cron.Cron {
	return s.cron
}
