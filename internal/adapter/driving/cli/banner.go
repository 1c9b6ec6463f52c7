package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ___  _    _ ____     ___          _     ___                       _   
  / _ \| |  | / ___|   / __\___  ___| |_  | _ \___ _ __   ___  _ __| |_ 
 | |_| | |/\| \___ \  / /  / _ \/ __| __| |   / -_) '_ \ / _ \| '__| __|
 |  _  |  /\  |___) |/ /__| (_) \__ \ |_  |_|_\___| .__/ \___/|_|   \__|
 |_| |_|_/  \_|____/ \____/\___/|___/\__|         |_|                    
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("AWS Cost Report CLI (v%s)", formattedVersion)))
}
