/*
 * Copyright (C) 2014 ~ 2018 Deepin Technology Co., Ltd.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coreelec/amlwinsys/configini"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("aml-configini")

var (
	optPath  = flag.String("f", configini.DefaultPath, "config.ini path")
	optDebug = flag.Bool("d", false, "debug")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-f file] get KEY [DEFAULT] | set KEY VALUE\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if *optDebug {
		logger.SetLogLevel(log.LevelDebug)
		configini.SetLogLevel(log.LevelDebug)
	}

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	f := configini.New(*optPath)
	switch args[0] {
	case "get":
		def := ""
		if len(args) > 2 {
			def = args[2]
		}
		fmt.Println(f.Get(args[1], def))
	case "set":
		if len(args) != 3 {
			usage()
			os.Exit(2)
		}
		err := f.Set(args[1], args[2])
		if err != nil {
			logger.Warning(err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}
