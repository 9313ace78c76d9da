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

package amlogic

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/coreelec/amlwinsys/display"
)

// parseCPUFamily reads the family id from the first byte of the SoC serial
// number in /proc/cpuinfo.
func parseCPUFamily(cpuinfo string) display.CPUFamily {
	scanner := bufio.NewScanner(strings.NewReader(cpuinfo))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Serial") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		serial := strings.TrimSpace(line[idx+1:])
		if len(serial) < 2 {
			continue
		}
		id, err := strconv.ParseUint(serial[:2], 16, 8)
		if err != nil {
			continue
		}
		return display.CPUFamily(id)
	}
	return display.CPUFamilyUnknown
}
