package model

// Division 分区表 — 对应 divisions
// level 数字越小级别越高（1 为最高分区），属于赛段内的参照数据。
type Division struct {
	DivisionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"division_id"`
	StageID    string `gorm:"type:uuid;not null;index"                       json:"stage_id"`
	Level      int    `gorm:"not null"                                       json:"level"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel

	Stage *Stage `gorm:"foreignKey:StageID;references:StageID" json:"stage,omitempty"`
}

// TableName 指定表名
func (Division) TableName() string { return "divisions" }
