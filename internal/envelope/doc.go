// Package envelope 实现请求/响应的多帧线上信封
//
// # 请求信封（6 帧，顺序严格）
//
//  1. 零长分隔帧（下层路由寻址要求）
//  2. 消息类型，十进制数字文本
//  3. 路由键：端点标识或主题订阅过滤串
//  4. message_id 文本
//  5. 上下文元数据，CBOR 序列化
//  6. 消息负载，调用方序列化的不透明字节
//
// # 响应信封（5 帧）
//
//  1. 零长分隔帧（必须为零长）
//  2. 发送方回显标识（必须非空）
//  3. 消息类型，必须等于 REPLY 类型值
//  4. message_id 文本
//  5. 响应负载
//
// 读取响应时先整体取出全部 5 帧再做结构校验，
// 违规信封整条作废但不在队列中留下残帧。
// 校验失败返回 ErrProtocolViolation，
// 通过显式错误而非断言暴露，绝不使进程退出。
package envelope
