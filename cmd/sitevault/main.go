// Package main 启动应用程序
package main

import "github.com/yeisme/sitevault/pkg/cmd"

//	@title			SiteVault API
//	@version		1.0
//	@description	SiteVault 是建筑工程项目管理系统的后端服务，提供任务、问题、考勤等实体的附件上传、存储、关联与下载能力。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme
//	@contact.email	yefun2004@gmail.com.

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
