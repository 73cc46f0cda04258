package model

// PromotionConfig 升降级配置表 — 对应 promotion_configs
//
// division_id 为 NULL 表示赛段级默认行。
// 分区解析顺序：分区专属行 → 赛段默认行 → 硬编码默认（20% / min 2 / max 10 / playoff 4）。
type PromotionConfig struct {
	ConfigID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"config_id"`
	StageID    string  `gorm:"type:uuid;not null"                             json:"stage_id"`
	DivisionID *string `gorm:"type:uuid"                                      json:"division_id"`

	PromotionPercent float64 `gorm:"not null;default:20" json:"promotion_percent"`
	PromotionMin     int     `gorm:"not null;default:2"  json:"promotion_min"`
	PromotionMax     int     `gorm:"not null;default:10" json:"promotion_max"`
	PlayoffSlots     int     `gorm:"not null;default:4"  json:"playoff_slots"`
	BaseModel
}

// TableName 指定表名
func (PromotionConfig) TableName() string { return "promotion_configs" }
