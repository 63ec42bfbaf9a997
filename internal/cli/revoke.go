package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"campus-planner/backend/config"
	applogger "campus-planner/backend/pkg/logger"
	"campus-planner/backend/pkg/redis"
)

// ErrRedisNotConfigured 未配置 redis.addr 时无法写入黑名单
var ErrRedisNotConfigured = errors.New("未配置 Redis，无法吊销 Token")

// tokenBlacklister Token 黑名单写入能力，由 pkg/redis.Client 提供
type tokenBlacklister interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

func newRevokeTokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "revoke-token <jti>",
		Short: "吊销指定 JWT ID",
		Long: `将 JWT ID 写入 Redis 黑名单，服务端鉴权中间件随即拒绝该 Token。
--ttl 应不小于 Token 剩余有效期，默认取 auth.access_token_ttl。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cfg.Redis.Addr == "" {
				return ErrRedisNotConfigured
			}
			logger, err := applogger.NewLogger(&cfg.Log)
			if err != nil {
				return fmt.Errorf("初始化日志失败: %w", err)
			}
			defer logger.Sync()

			rdb, err := redis.NewClient(&cfg.Redis, logger)
			if err != nil {
				return err
			}
			defer rdb.Close()

			if ttl <= 0 {
				ttl = cfg.Auth.AccessTokenTTL
			}
			return revokeToken(cmd.Context(), rdb, args[0], ttl, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "黑名单保留时长")
	return cmd
}

func revokeToken(ctx context.Context, b tokenBlacklister, jti string, ttl time.Duration, out io.Writer) error {
	if jti == "" {
		return errors.New("jti 不能为空")
	}
	if err := b.BlacklistToken(ctx, jti, ttl); err != nil {
		return fmt.Errorf("写入黑名单失败: %w", err)
	}
	fmt.Fprintf(out, "已吊销 %s（%s）\n", jti, ttl)
	return nil
}
