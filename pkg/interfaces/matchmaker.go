// Package interfaces 定义调度层消费的协作方契约
//
// 调度层只依赖这些接口，不关心服务发现、套接字传输和
// 响应关联引擎的具体实现。
package interfaces

import "github.com/dep2p/go-mqrpc/pkg/types"

// ============================================================================
//                              Matchmaker - 服务发现
// ============================================================================

// Matchmaker 服务发现接口
//
// 将逻辑目标解析为一组物理端点标识。
type Matchmaker interface {
	// GetHosts 返回目标在指定角色下的全部已知端点
	//
	// 返回顺序即轮询顺序。
	GetHosts(target types.Target, role string) ([]types.HostID, error)

	// GetPublishers 返回当前全部代理地址对
	GetPublishers() ([]types.PublisherAddress, error)
}

// RoleDealer 出站路由查询使用的角色标签
const RoleDealer = "DEALER"
