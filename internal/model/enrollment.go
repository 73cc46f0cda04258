package model

// 报名状态
const (
	EnrollmentActive    = "active"
	EnrollmentWithdrawn = "withdrawn"
)

// Enrollment 报名表（inscripción）— 对应 enrollments
// 定义分区排名的参赛人群与降级暴露范围；由报名流程创建，引擎只读。
type Enrollment struct {
	EnrollmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	PlayerID     string `gorm:"type:uuid;not null;index"                       json:"player_id"`
	StageID      string `gorm:"type:uuid;not null"                             json:"stage_id"`
	DivisionID   string `gorm:"type:uuid;not null"                             json:"division_id"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | withdrawn
	BaseModel

	Player *Player `gorm:"foreignKey:PlayerID;references:PlayerID" json:"player,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
