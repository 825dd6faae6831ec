// Package routing 实现带时效的本地路由表缓存
//
// # 架构定位
//
// - 架构层: Dispatch Layer (客户端)
// - 数据来源: 服务发现 (interfaces.Matchmaker)
// - 使用方: internal/dispatch
//
// # 核心功能
//
//  1. 路由记录缓存 - 按目标缓存发现结果及其抓取时间
//  2. 时效刷新 - 记录超龄后重新抓取并整体替换
//  3. 轮询队列 - 为每个目标维护可消费的轮询端点序列
//  4. 快照读取 - 扇出寻址的非消费式全量读取
//
// # 刷新与轮询的解耦
//
// 记录的时效在每次查询时廉价检查；但正在使用的轮询队列只在
// 被弹空时才从（可能刚刷新过的）记录重建。因此一次中途刷新
// 不会截断或重排调用方正在消费的公平轮询序列：新端点集合要等
// 上一轮完整耗尽后才可见。这是有意为之的滞后，不是缺陷。
package routing
