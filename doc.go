// Package mqrpc 是基于消息队列的 RPC 传输的客户端调度层
//
// # 架构定位
//
// mqrpc 决定每条出站请求发往哪些远端端点，将请求装成固定的
// 多帧线上信封，并把关联好的响应从线路上解码回来。以下能力
// 视为外部协作方，通过 pkg/interfaces 注入：
//
//   - 服务发现（逻辑目标 → 物理端点集合）: interfaces.Matchmaker
//   - 底层异步套接字传输（多帧收发、连接建立）: interfaces.Socket
//   - 响应关联引擎: interfaces.ReplyWaiter（内置默认实现）
//
// # 使用示例
//
//	client, err := mqrpc.New(matchmaker, proxySocket, callSocket)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// 单端点投递（轮询负载均衡）
//	_ = client.Cast(mqrpc.Target{Topic: "compute"}, payload)
//
//	// 调用并等待响应
//	reply, err := client.Call(ctx, mqrpc.Target{Topic: "compute"}, payload, nil)
//
// 入站通道的轮询属于外部事件循环：套接字可读时调用
// client.OnReplyReadable()，每次恰好消费一条响应。
package mqrpc
