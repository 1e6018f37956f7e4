package tree_installer

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"
)

const (
	// Linux terminal command string to clear the current line and reset the cursor
	clearLineVT100 = "\033[2K\r"
	logFilename    = "tree-setup.log"
)

// Run parses commandline options (if any) and runs the installer.
//
// Commandline parameters are:
//
//	[TARGET_DIR]  // Directory to install into, instead of ~/bin
//	-yes          // Overwrite an existing installed file without asking
//	-lang         // Choose the message language
//
// Without a target directory argument the installer falls back to the "bin"
// folder in the user's home directory, and if that doesn't exist either, the
// executable copy is simply left in the working directory. The return value
// is the process exit code.
func Run() int {
	logfile := startLogging(logFilename)
	defer logfile.Close()

	openBoxes()
	config, err := NewConfig()
	if err != nil {
		return 1
	}
	config.Variables["installerName"] = os.Args[0]
	config.Variables["sourceFile"] = config.SourceFilename()
	config.Variables["installedFile"] = config.SourceBase
	translator := NewTranslatorVar(config.Variables)

	assumeYes := flag.Bool("yes", false, translator.Get("cli_help_yes"))
	lang := flag.String("lang", "", translator.Get("cli_help_lang")+" "+strings.Join(translator.GetLanguages(), ", "))
	flag.Parse()

	if len(*lang) > 0 {
		err := translator.SetLanguage(*lang)
		if err != nil {
			fmt.Printf("Language '%s' not available\n", *lang)
		}
	}

	// Anything other than exactly one argument counts as no argument at all,
	// and the fallback directory decides.
	candidate := ""
	if flag.NArg() == 1 {
		candidate = flag.Arg(0)
	} else if flag.NArg() > 1 {
		fmt.Println(translator.Get("cli_usage"))
		log.Printf("Expected at most one argument, got %d, using the fallback directory", flag.NArg())
	}

	return RunCliInstall(candidate, *assumeYes, translator, config)
}

// RunCliInstall runs the installation on the command line, with no user
// interaction beyond the overwrite prompt (suppressed by assumeYes).
func RunCliInstall(targetArg string, assumeYes bool, translator *Translator, config *Config) int {
	installer := NewInstaller(config)
	if assumeYes {
		installer.SetConfirmFunction(func(path string) bool { return true })
	} else {
		installer.SetConfirmFunction(promptOverwrite(translator))
	}
	installer.SetProgressFunction(func(status InstallStatus) {
		fmt.Print(clearLineVT100 + translator.Get("step_"+status.Step))
	})

	target := installer.SelectTarget(targetArg)
	if target == "" {
		fmt.Println(translator.Get("install_no_target"))
	}

	cancelChannel := make(chan os.Signal, 1)
	signal.Notify(cancelChannel, os.Interrupt)
	fmt.Println(translator.Get("installing"))
	installer.StartInstall()
	go func() {
		for range cancelChannel {
			installer.Rollback()
		}
	}()
	installer.WaitForDone()

	if installer.Aborted {
		fmt.Println(clearLineVT100 + translator.Get("install_aborted"))
		return 1
	}
	if err := installer.Error(); err != nil {
		log.Println(err)
		fmt.Println(clearLineVT100 + translator.Get("install_failed"))
		fmt.Println(err)
		return 1
	}
	if installer.Moved() {
		log.Printf("Installed '%s'", installer.InstalledPath())
		fmt.Printf(clearLineVT100+"'%s' -> '%s'\n", config.SourceBase, installer.InstalledPath())
	} else if target != "" {
		fmt.Println(clearLineVT100 + translator.Get("install_kept_existing"))
	}
	fmt.Println(installer.SizeString())
	fmt.Println(translator.Get("install_done"))
	return 0
}

// promptOverwrite returns a confirm function that asks on the terminal before
// an existing file at the destination is overwritten. When stdin is not a
// terminal the overwrite is declined, so piped runs never hang on a read.
func promptOverwrite(translator *Translator) func(string) bool {
	return func(path string) bool {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return false
		}
		fmt.Printf("%s '%s'? [y/N] ", translator.Get("overwrite_prompt"), path)
		answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

// startLogging sets up the logging
func startLogging(logFilename string) *os.File {
	logfile, err := os.OpenFile(logFilename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(logfile)
	return logfile
}
