package adv

import (
	log "github.com/sirupsen/logrus"

	bt "github.com/xranby/direct-bt-1"
)

// maxReports is the largest report count of an LE Advertising Report
// event [Vol 4, Part E, 7.7.65.2].
const maxReports = 0x19

// segmentCount is the number of parallel arrays in the event payload:
// event type, address type, address, data length, data, rssi.
const segmentCount = 6

// ReadReports decodes the kernel advertising-report batch: a report
// count followed by six parallel arrays. Arrays are bounded by the end
// of data; whatever reports could be built are returned, and a short
// batch is warned about.
func ReadReports(data []byte) []*Report {
	if len(data) == 0 {
		return nil
	}
	num := int(data[0])
	if num <= 0 || num > maxReports {
		log.Debugf("adv: invalid report count %d", num)
		return nil
	}
	ts := currentMilliseconds()
	reports := make([]*Report, 0, num)
	adLen := make([]int, num)
	i := 1
	segments := 0

	n := 0
	for ; n < num && i < len(data); n++ {
		r := &Report{Source: SourceAD, Timestamp: ts}
		r.EvtType = data[i]
		i++
		reports = append(reports, r)
	}
	if n == num {
		segments++
	}
	for n = 0; n < num && n < len(reports) && i < len(data); n++ {
		reports[n].AddressType = bt.AddressType(data[i])
		i++
	}
	if n == num {
		segments++
	}
	for n = 0; n < num && n < len(reports) && i+6 <= len(data); n++ {
		var a bt.EUI48
		copy(a[:], data[i:i+6])
		reports[n].setAddress(a)
		i += 6
	}
	if n == num {
		segments++
	}
	for n = 0; n < num && i < len(data); n++ {
		adLen[n] = int(data[i])
		i++
	}
	if n == num {
		segments++
	}
	for n = 0; n < num && n < len(reports) && i+adLen[n] <= len(data); n++ {
		if _, err := reports[n].ReadData(data[i : i+adLen[n]]); err != nil {
			log.Warnf("adv: report %d: %v", n, err)
		}
		i += adLen[n]
	}
	if n == num {
		segments++
	}
	for n = 0; n < num && n < len(reports) && i < len(data); n++ {
		reports[n].setRSSI(int8(data[i]))
		i++
	}
	if n == num {
		segments++
	}

	if segments != segmentCount {
		log.Warnf("adv: incomplete batch of %d reports in %d bytes: %d of %d segments",
			num, len(data), segments, segmentCount)
	}
	return reports
}
