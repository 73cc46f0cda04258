package errors

import "errors"

// ErrRerankLockTimeout 分区重排锁在等待窗口内未能获取
var ErrRerankLockTimeout = errors.New("分区重排正在进行中，请稍后重试")

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
