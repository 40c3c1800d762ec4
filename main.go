package main

import "github.com/tracktag/analyzer-api/cmd"

// @title           Track Analyzer API
// @version         1.0.0
// @description     Audio feature extraction API deriving BPM, musical key and energy from tracks
// @contact.name    API Support
// @contact.url     https://github.com/tracktag/analyzer-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
