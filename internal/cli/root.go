// Package cli 运维命令行 plannerctl：数据库迁移、先修图检查与 Token 吊销
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-planner/backend/config"
	"campus-planner/backend/pkg/database"
	applogger "campus-planner/backend/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "plannerctl",
	Short: "campus-planner 运维工具",
	Long: `plannerctl 复用服务端配置（config.yaml / PLANNER_* 环境变量），
用于执行数据库迁移、检查课程先修图以及吊销 Token。`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCheckPrereqsCmd())
	rootCmd.AddCommand(newRevokeTokenCmd())
}

// env 命令运行所需的公共依赖
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
	_ = e.logger.Sync()
}
