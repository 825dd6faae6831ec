// Package dispatch 实现出站请求的调度策略
//
// # 架构定位
//
// - 架构层: Dispatch Layer (客户端)
// - 依赖: internal/routing, internal/envelope
// - 协作方: interfaces.Socket, interfaces.Matchmaker, interfaces.ReplyWaiter
//
// # 核心组件
//
//  1. Publisher - 通用调度策略：按传输模式与消息类型决定寻址方式
//     （单端点轮询 / 主题过滤 / 显式逐端点扇出），拒绝 CALL 类型
//  2. CallSender - 调用模式专用：永远单端点轮询、永远等待响应
//  3. Waiter - 进程内响应关联引擎，按 message_id 匹配挂起调用
//  4. ReplyReceiver - 从可读事件解码一条响应并交给关联引擎
//  5. ConnectionUpdater - 周期询问服务发现并幂等连接全部代理
//
// # 并发模型
//
// 每个出站套接字有唯一逻辑属主：Publisher 与 CallSender 内部
// 各持有发送互斥锁，保证一个信封的多帧发送不被交错。同一个
// 套接字不得同时交给 Publisher 和 CallSender。ReplyReceiver
// 由入站通道的轮询方调用，可与不同套接字上的出站发送并发。
package dispatch
