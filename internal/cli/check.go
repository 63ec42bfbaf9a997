package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/repository"
	"campus-planner/backend/internal/service"
)

// ErrCycleFound 先修图存在环，命令以非零状态退出
var ErrCycleFound = errors.New("先修图存在环")

// graphValidator 先修图校验能力，由 PlanningService 提供
type graphValidator interface {
	ValidatePrerequisiteGraph(ctx context.Context) (*dto.GraphValidationResponse, error)
}

func newCheckPrereqsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-prereqs",
		Short: "检查课程先修图是否存在环",
		Long:  `读取全部课程与先修关系并检测环。存在环时打印环路径并以状态码 1 退出。`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.close()

			planner := planning.NewPlanner(planning.NopAdvisor{}, e.cfg.Planning.BalanceWeight, e.logger)
			svc := service.NewPlanningService(&e.cfg.Planning, repository.NewRepository(e.db), planner, e.logger)
			return checkPrereqs(cmd.Context(), svc, cmd.OutOrStdout())
		},
	}
}

func checkPrereqs(ctx context.Context, v graphValidator, out io.Writer) error {
	result, err := v.ValidatePrerequisiteGraph(ctx)
	if err != nil {
		return fmt.Errorf("校验先修图失败: %w", err)
	}
	if result.OK {
		fmt.Fprintln(out, "先修图无环")
		return nil
	}

	path := result.CycleCodes
	if len(path) == 0 {
		path = result.Cycle
	}
	fmt.Fprintf(out, "发现环: %s\n", strings.Join(path, " -> "))
	return ErrCycleFound
}
