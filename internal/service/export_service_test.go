package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestExportService_ExportStandings(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())
	stageID, _ := seedDivision(repo, 4)
	ctx := context.Background()

	// 预先算好标准榜
	logger := zap.NewNop()
	globalForm := NewGlobalFormService(repo, logger)
	rankingSvc := NewRankingService(testRankingConfig(), repo, nil, globalForm, logger)
	if err := rankingSvc.RecomputeDivision(ctx, stageID, "div-001"); err != nil {
		t.Fatalf("重排应成功: %v", err)
	}

	buf, filename, err := svc.ExportStandings(ctx, stageID, "")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "标准榜_Etapa 1.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex("Primera")
	if err != nil || idx < 0 {
		t.Fatalf("应存在分区 Sheet「Primera」: idx=%d err=%v", idx, err)
	}
	head, err := f.GetCellValue("Primera", "A1")
	if err != nil || head != "名次" {
		t.Errorf("表头 A1 应为「名次」，实际=%q err=%v", head, err)
	}
	// 4 名球员 → 表头 + 4 行数据
	rows, _ := f.GetRows("Primera")
	if len(rows) != 5 {
		t.Errorf("期望 5 行（含表头），实际=%d", len(rows))
	}
}

func TestExportService_ExportStandings_UnknownDivision(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())
	stageID, _ := seedDivision(repo, 2)

	_, _, err := svc.ExportStandings(context.Background(), stageID, "div-inexistente")
	if !errors.Is(err, ErrExportNoDivisions) {
		t.Errorf("未知分区应返回 ErrExportNoDivisions，实际: %v", err)
	}
}

func TestExportService_ExportStandings_UnknownStage(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())

	_, _, err := svc.ExportStandings(context.Background(), "missing", "")
	if !errors.Is(err, ErrStageNotFound) {
		t.Errorf("未知赛段应返回 ErrStageNotFound，实际: %v", err)
	}
}
